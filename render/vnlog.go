package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// VNLOG writes the same 25-column rows as TSV but with the vnlog
// convention: a "#"-prefixed header and "-" for empty cells instead of an
// empty string. Absent cells and cells holding an empty string are both
// written as "-".
type VNLOG struct {
	w           *bufio.Writer
	wroteHeader bool
}

// NewVNLOG builds a VNLOG writer over w.
func NewVNLOG(w io.Writer) *VNLOG {
	return &VNLOG{w: bufio.NewWriter(w)}
}

func (vn *VNLOG) WriteRecord(v RecordView) error {
	if !vn.wroteHeader {
		if _, err := vn.w.WriteString("# " + strings.Join(tsvHeader, " ") + "\n"); err != nil {
			return fmt.Errorf("fpdt: render: vnlog: %w", err)
		}
		vn.wroteHeader = true
	}

	cells := make([]string, len(tsvHeader))
	for i, col := range columns(v) {
		cells[i] = vnlogCell(col)
	}

	if _, err := vn.w.WriteString(strings.Join(cells, " ") + "\n"); err != nil {
		return fmt.Errorf("fpdt: render: vnlog: %w", err)
	}

	return vn.w.Flush()
}

func vnlogCell(col any) string {
	if col == nil {
		return "-"
	}

	s := cellString(col)
	if s == "" {
		return "-"
	}

	return s
}
