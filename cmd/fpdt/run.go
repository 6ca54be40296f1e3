package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/fprime-community/fpdt/bytestream"
	"github.com/fprime-community/fpdt/codec"
	"github.com/fprime-community/fpdt/diagnostics"
	"github.com/fprime-community/fpdt/dictionary"
	"github.com/fprime-community/fpdt/fwerrs"
	"github.com/fprime-community/fpdt/packet"
	"github.com/fprime-community/fpdt/record"
	"github.com/fprime-community/fpdt/render"
)

// identResolver and paramResolver convert a possibly-nil *dictionary.Dictionary
// to the matching interface type as a genuine nil interface value when dict
// is nil. Passing dict straight through would instead produce a non-nil
// interface wrapping a nil pointer, which every "dict != nil" check inside
// packet/record would see as present and then dereference.
func identResolver(dict *dictionary.Dictionary) packet.IdentifierResolver {
	if dict == nil {
		return nil
	}
	return dict
}

func paramResolver(dict *dictionary.Dictionary) record.ParameterResolver {
	if dict == nil {
		return nil
	}
	return dict
}

// recordTypesForcingJSON are every --record-type other than the two the
// 25-column schema was designed around; spec.md §6 forces JSON output for
// these regardless of --output-format.
var recordTypesForcingJSON = map[string]bool{
	"FprimeGdsStream": true,
	"PrmDbRecord":     true,
}

func run(opts *Options, stdout, stderr io.Writer) int {
	logger := newLogrusSink(opts, stderr)

	input, closeInput, err := openInput(opts.Positional.Input)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer closeInput()

	cfg, err := buildConfig(opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	reg := codec.NewRegistry(cfg)
	if err := applyAliasOverrides(reg, opts); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	dict, err := loadDictionaries(opts.Dictionary, reg, logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	r := bytestream.NewReader(input)

	outputFormat := opts.OutputFormat
	if recordTypesForcingJSON[opts.RecordType] {
		outputFormat = "json"
	}

	switch opts.RecordType {
	case "ComLoggerRecord", "FprimeGdsRecord":
		return runFramedLoop(opts.RecordType, r, reg, dict, logger, outputFormat, stdout, stderr)
	case "FprimeGdsStream":
		return runStreamLoop(r, reg, dict, logger, stdout, stderr)
	case "PrmDbRecord":
		return runPrmDbLoop(r, reg, dict, logger, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "fpdt: unknown record type %q\n", opts.RecordType)
		return 1
	}
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("fpdt: opening input: %w", err)
	}

	return f, func() { f.Close() }, nil
}

func loadDictionaries(paths []string, reg *codec.Registry, diag diagnostics.Sink) (*dictionary.Dictionary, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	dict := dictionary.New(reg, diag)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("fpdt: reading dictionary %q: %w", path, err)
		}
		if err := dict.Merge(data); err != nil {
			return nil, fmt.Errorf("fpdt: merging dictionary %q: %w", path, err)
		}
	}

	if err := dict.Bind(); err != nil {
		return nil, fmt.Errorf("fpdt: binding dictionary: %w", err)
	}

	return dict, nil
}

func newWriter(format string, stdout io.Writer) (render.Writer, error) {
	switch strings.ToLower(format) {
	case "json":
		return render.NewJSON(stdout), nil
	case "tsv":
		return render.NewTSV(stdout), nil
	case "vnlog", "":
		return render.NewVNLOG(stdout), nil
	default:
		return nil, fwerrs.ConfigurationErrorf("unknown output format %q", format)
	}
}

func runFramedLoop(recordType string, r *bytestream.Reader, reg *codec.Registry, dict *dictionary.Dictionary, diag diagnostics.Sink, outputFormat string, stdout, stderr io.Writer) int {
	var framer *record.Framer
	var err error

	switch recordType {
	case "ComLoggerRecord":
		framer, err = record.NewComLoggerRecord(reg)
	case "FprimeGdsRecord":
		framer, err = record.NewFprimeGdsRecord(reg)
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	w, err := newWriter(outputFormat, stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	index := 0
	for {
		rec, err := framer.Decode(r, reg, identResolver(dict), diag)
		if err != nil {
			if fwerrs.IsEndOfStream(err) {
				return 0
			}
			if errors.Is(err, fwerrs.ErrMalformedPacket) {
				diag.Warn("malformed_packet", err.Error(), nil)
				continue
			}
			fmt.Fprintln(stderr, err)
			return 1
		}

		view, err := render.BuildRecordView(index, rec, dict)
		if err != nil {
			diag.Warn("malformed_packet", err.Error(), nil)
			index++
			continue
		}

		if err := w.WriteRecord(view); err != nil {
			if isBrokenPipe(err) {
				return 0
			}
			fmt.Fprintln(stderr, err)
			return 1
		}

		index++
	}
}

func runStreamLoop(r *bytestream.Reader, reg *codec.Registry, dict *dictionary.Dictionary, diag diagnostics.Sink, stdout, stderr io.Writer) int {
	stream, err := record.NewFprimeGdsStream(reg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	enc := json.NewEncoder(stdout)

	for {
		rec, err := stream.Decode(r, reg, identResolver(dict), diag)
		if err != nil {
			if fwerrs.IsEndOfStream(err) {
				return 0
			}
			if errors.Is(err, fwerrs.ErrMalformedPacket) {
				diag.Warn("malformed_packet", err.Error(), nil)
				continue
			}
			fmt.Fprintln(stderr, err)
			return 1
		}

		if err := enc.Encode(rec); err != nil {
			if isBrokenPipe(err) {
				return 0
			}
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
}

func runPrmDbLoop(r *bytestream.Reader, reg *codec.Registry, dict *dictionary.Dictionary, diag diagnostics.Sink, stdout, stderr io.Writer) int {
	enc := json.NewEncoder(stdout)

	for {
		rec, err := record.DecodePrmDbRecord(r, reg, paramResolver(dict), diag)
		if err != nil {
			if fwerrs.IsEndOfStream(err) {
				return 0
			}
			fmt.Fprintln(stderr, err)
			return 1
		}

		if err := enc.Encode(rec); err != nil {
			if isBrokenPipe(err) {
				return 0
			}
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
}

func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE)
}
