package dictionary

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/fprime-community/fpdt/fwtype"
)

// xmlDocument mirrors the seven top-level collections a dictionary XML file
// can carry. Only the collections present are populated; a file may supply
// any subset (spec.md §4.8).
type xmlDocument struct {
	Enums         []xmlEnum         `xml:"enums>enum"`
	Serializables []xmlSerializable `xml:"serializables>serializable"`
	Arrays        []xmlArray        `xml:"arrays>array"`
	Commands      []xmlCommand      `xml:"commands>command"`
	Events        []xmlEvent        `xml:"events>event"`
	Channels      []xmlChannel      `xml:"channels>channel"`
	Parameters    []xmlParameter    `xml:"parameters>parameter"`
}

type xmlEnum struct {
	Name  string        `xml:"type,attr"`
	Items []xmlEnumItem `xml:"item"`
}

type xmlEnumItem struct {
	Name        string `xml:"name,attr"`
	Value       string `xml:"value,attr"`
	Description string `xml:"description,attr"`
}

type xmlSerializable struct {
	TypeName string      `xml:"type,attr"`
	Members  []xmlMember `xml:"members>member"`
}

type xmlMember struct {
	Name            string `xml:"name,attr"`
	TypeName        string `xml:"type,attr"`
	Length          string `xml:"len,attr"`
	FormatSpecifier string `xml:"format_specifier,attr"`
	Default         string `xml:"default,attr"`
}

type xmlArray struct {
	Name            string `xml:"name,attr"`
	ElementTypeName string `xml:"type,attr"`
	Size            string `xml:"size,attr"`
	Format          string `xml:"format,attr"`
}

type xmlCommand struct {
	Component   string       `xml:"component,attr"`
	Mnemonic    string       `xml:"mnemonic,attr"`
	Opcode      string       `xml:"opcode,attr"`
	Description string       `xml:"description,attr"`
	Args        []xmlArgument `xml:"args>arg"`
}

type xmlEvent struct {
	Component    string        `xml:"component,attr"`
	Name         string        `xml:"name,attr"`
	ID           string        `xml:"id,attr"`
	Severity     string        `xml:"severity,attr"`
	FormatString string        `xml:"format_string,attr"`
	Description  string        `xml:"description,attr"`
	Args         []xmlArgument `xml:"args>arg"`
}

type xmlArgument struct {
	Name        string `xml:"name,attr"`
	TypeName    string `xml:"type,attr"`
	Length      string `xml:"len,attr"`
	Description string `xml:"description,attr"`
}

type xmlChannel struct {
	Component    string `xml:"component,attr"`
	Name         string `xml:"name,attr"`
	ID           string `xml:"id,attr"`
	TypeName     string `xml:"type,attr"`
	FormatString string `xml:"format_string,attr"`
	Description  string `xml:"description,attr"`
}

type xmlParameter struct {
	Component string `xml:"component,attr"`
	Name      string `xml:"name,attr"`
	ID        string `xml:"id,attr"`
	Default   string `xml:"default,attr"`
}

// parseXML decodes an XML dictionary document from data. It does not merge
// into a Dictionary or perform any binding; call Dictionary.Merge to do
// both.
func parseXML(data []byte) (*xmlDocument, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fpdt: dictionary: parsing XML: %w", err)
	}

	return &doc, nil
}

// parseID parses a dictionary numeric-ID attribute, which is decimal unless
// it carries a "0x" prefix (spec.md §4.8).
func parseID(s string) (uint32, error) {
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		s = s[2:]
	}

	n, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("fpdt: dictionary: invalid numeric ID %q: %w", s, err)
	}

	return uint32(n), nil
}

// parseLength parses an optional len="" attribute, returning (0, false)
// when absent.
func parseLength(s string) (int, bool) {
	if s == "" {
		return 0, false
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}

	return n, true
}

func parseSeverity(s string) fwtype.EventSeverity {
	sev, ok := fwtype.ParseEventSeverity(s)
	if !ok {
		return fwtype.SeverityDiagnostic
	}

	return sev
}
