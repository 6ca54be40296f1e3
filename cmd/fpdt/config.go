package main

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/fprime-community/fpdt/codec"
	"github.com/fprime-community/fpdt/fwerrs"
)

// aliasKind records the default (Kind) of each configurable alias, so a
// width override can rebuild the alias's Fundamental codec without
// changing its signedness.
var aliasKind = map[string]codec.Kind{
	"FwBuffSize":         codec.KindUint,
	"FwChanId":           codec.KindUint,
	"FwEnumStore":        codec.KindInt,
	"FwEventId":          codec.KindUint,
	"FwOpcode":           codec.KindUint,
	"FwPacketDescriptor": codec.KindUint,
	"FwPrmId":            codec.KindUint,
	"FwTimeBaseStore":    codec.KindUint,
	"FwTimeContextStore": codec.KindUint,
	"FwTlmPacketizeId":   codec.KindUint,
}

// aliasOverrides reads Options' width fields back out as a name->width map,
// skipping the zero value (meaning "leave the built-in default alone").
func aliasOverrides(opts *Options) map[string]int {
	widths := map[string]int{
		"FwBuffSize":         opts.FwBuffSize,
		"FwChanId":           opts.FwChanId,
		"FwEnumStore":        opts.FwEnumStore,
		"FwEventId":          opts.FwEventId,
		"FwOpcode":           opts.FwOpcode,
		"FwPacketDescriptor": opts.FwPacketDescriptor,
		"FwPrmId":            opts.FwPrmId,
		"FwTimeBaseStore":    opts.FwTimeBaseStore,
		"FwTimeContextStore": opts.FwTimeContextStore,
		"FwTlmPacketizeId":   opts.FwTlmPacketizeId,
	}

	out := make(map[string]int)
	for name, w := range widths {
		// viper.AutomaticEnv (with SetEnvPrefix("FPDT") in main) overlays
		// FPDT_<ALIAS> on top of whatever go-flags parsed, so an env var
		// can set a width without a flag.
		if env := viper.GetInt(name); env != 0 {
			w = env
		}
		if w != 0 {
			out[name] = w
		}
	}

	return out
}

// buildConfig turns parsed Options into a codec.Config, validating the
// boolean and hex-byte flags per spec.md §6's configuration table.
func buildConfig(opts *Options) (codec.Config, error) {
	cfg := codec.DefaultConfig()

	useBase, err := parseBoolFlag(opts.UseTimeBase)
	if err != nil {
		return cfg, fwerrs.ConfigurationErrorf("USE_TIME_BASE: %w", err)
	}
	cfg.UseTimeBase = useBase

	useContext, err := parseBoolFlag(opts.UseTimeContext)
	if err != nil {
		return cfg, fwerrs.ConfigurationErrorf("USE_TIME_CONTEXT: %w", err)
	}
	cfg.UseTimeContext = useContext

	trueByte, err := parseHexByte(opts.TrueByte)
	if err != nil {
		return cfg, fwerrs.ConfigurationErrorf("TRUE_BYTE: %w", err)
	}
	cfg.TrueByte = trueByte

	falseByte, err := parseHexByte(opts.FalseByte)
	if err != nil {
		return cfg, fwerrs.ConfigurationErrorf("FALSE_BYTE: %w", err)
	}
	cfg.FalseByte = falseByte

	return cfg, nil
}

// applyAliasOverrides rebinds every alias opts requested a non-default
// width for, preserving each alias's default signedness.
func applyAliasOverrides(reg *codec.Registry, opts *Options) error {
	for name, width := range aliasOverrides(opts) {
		if width != 1 && width != 2 && width != 4 && width != 8 {
			return fwerrs.ConfigurationErrorf("%s: width must be 1, 2, 4, or 8, got %d", name, width)
		}

		kind := aliasKind[name]
		reg.SetAlias(name, codec.NewFundamental(width, kind, binary.BigEndian))
	}

	return nil
}

func parseBoolFlag(s string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("expected true/false, got %q", s)
	}

	return b, nil
}

func parseHexByte(s string) (byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")

	n, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("expected a hex byte, got %q", s)
	}

	return byte(n), nil
}
