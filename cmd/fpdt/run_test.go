package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func defaultTestOptions() *Options {
	return &Options{
		OutputFormat:   "vnlog",
		RecordType:     "ComLoggerRecord",
		UseTimeBase:    "false",
		UseTimeContext: "false",
		TrueByte:       "0xFF",
		FalseByte:      "0x00",
	}
}

func TestRunDecodesComLoggerRecordToVNLOG(t *testing.T) {
	opts := defaultTestOptions()
	// The input below carries a 1-byte packet tag; the default
	// FwPacketDescriptor width is 4 bytes.
	opts.FwPacketDescriptor = 1
	opts.Positional.Input = writeTempInput(t, []byte{
		0x00, 0x0D,
		0x02,
		0x00, 0x00, 0x04, 0xD2,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	})

	var stdout, stderr bytes.Buffer
	code := run(opts, &stdout, &stderr)

	require.Equal(t, 0, code)
	require.Empty(t, stderr.String())

	lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "# record_index "))
	require.Contains(t, lines[1], "LOG")
}

func TestRunRejectsUnknownRecordType(t *testing.T) {
	opts := defaultTestOptions()
	opts.RecordType = "NotARecordType"
	opts.Positional.Input = writeTempInput(t, []byte{})

	var stdout, stderr bytes.Buffer
	code := run(opts, &stdout, &stderr)

	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "unknown record type")
}

func writeTempInput(t *testing.T, data []byte) string {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "fpdt-input-*")
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Write(data)
	require.NoError(t, err)

	return f.Name()
}
