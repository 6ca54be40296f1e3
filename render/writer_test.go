package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fprime-community/fpdt/render"
)

func sampleLogView() render.RecordView {
	return render.RecordView{
		RecordIndex:     0,
		PacketSize:      13,
		PacketTypeName:  "LOG",
		PacketTypeValue: 2,
		HasEvent:        true,
		EventID:         1234,
		EventIDHex:      "0x4d2",
		EventTime:       "0.000000",
	}
}

func TestTSVWriterHeaderAndEmptyCells(t *testing.T) {
	var buf bytes.Buffer
	w := render.NewTSV(&buf)
	require.NoError(t, w.WriteRecord(sampleLogView()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "record_index\t"))

	cells := strings.Split(lines[1], "\t")
	require.Len(t, cells, 25)
	require.Equal(t, "", cells[1]) // record_offset, absent
	require.Equal(t, "LOG", cells[3])
}

func TestVNLOGWriterHeaderAndDashCells(t *testing.T) {
	var buf bytes.Buffer
	w := render.NewVNLOG(&buf)
	require.NoError(t, w.WriteRecord(sampleLogView()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "# record_index "))

	cells := strings.Split(lines[1], " ")
	require.Len(t, cells, 25)
	require.Equal(t, "-", cells[1])
}

func TestJSONWriterOmitsAbsentFields(t *testing.T) {
	var buf bytes.Buffer
	w := render.NewJSON(&buf)
	require.NoError(t, w.WriteRecord(sampleLogView()))

	out := buf.String()
	require.Contains(t, out, `"packet_type_name":"LOG"`)
	require.NotContains(t, out, "record_offset")
	require.NotContains(t, out, "telem_id")
}
