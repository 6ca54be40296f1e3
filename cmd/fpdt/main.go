// Command fpdt decodes F Prime flight-software telemetry byte streams into
// JSON, TSV, or VNLOG records (spec.md §6). See Options for the full flag
// surface.
package main

import (
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/fprime-community/fpdt/diagnostics"
)

func main() {
	viper.SetEnvPrefix("FPDT")
	viper.AutomaticEnv()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	os.Exit(run(&opts, os.Stdout, os.Stderr))
}

// newLogrusSink builds the diagnostics.Sink warnings are routed to:
// logrus at warn level by default, debug level under -v, writing to
// stderr so it never interleaves with the record stream on stdout.
func newLogrusSink(opts *Options, stderr io.Writer) diagnostics.Sink {
	logger := logrus.New()
	logger.SetOutput(stderr)

	if len(opts.Verbose) > 0 {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	return diagnostics.NewLogrusSink(logger)
}
