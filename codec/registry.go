package codec

import "encoding/binary"

// Registry is the type namespace: a name-to-Codec map seeded with the
// built-in fundamental codecs and the configurable aliases, then extended
// by the dictionary binder as user-defined types resolve. Registries are
// constructed once and are safe to read concurrently once construction is
// complete (spec.md §5); Register itself is not safe for concurrent use.
type Registry struct {
	types  map[string]Codec
	config Config
}

// NewRegistry creates a Registry seeded with the built-in fundamental
// codecs, the default-big-endian configurable aliases, the "bool" codec
// bound to cfg's TRUE_BYTE/FALSE_BYTE, and "Time" bound to cfg's
// USE_TIME_BASE/USE_TIME_CONTEXT flags.
func NewRegistry(cfg Config) *Registry {
	reg := &Registry{types: make(map[string]Codec), config: cfg}

	for _, spec := range builtinFundamentals {
		reg.types[spec.name] = NewFundamental(spec.width, spec.kind, binary.BigEndian)
	}

	for _, spec := range builtinFundamentalVariants {
		reg.types[spec.name] = NewFundamental(spec.width, spec.kind, spec.order)
	}

	for _, spec := range builtinAliases {
		reg.types[spec.name] = NewFundamental(spec.width, spec.kind, binary.BigEndian)
	}

	reg.types["bool"] = NewBool(cfg.TrueByte, cfg.FalseByte)

	reg.types["Time"] = NewTime(
		reg.types["FwTimeBaseStore"],
		reg.types["FwTimeContextStore"],
		NewFundamental(4, KindUint, binary.BigEndian),
		NewFundamental(4, KindUint, binary.BigEndian),
		cfg.UseTimeBase,
		cfg.UseTimeContext,
	)

	return reg
}

// Config returns the configuration this registry was constructed with.
func (r *Registry) Config() Config { return r.config }

// Lookup returns the codec registered under name, and whether it was
// found.
func (r *Registry) Lookup(name string) (Codec, bool) {
	c, ok := r.types[name]
	return c, ok
}

// Register binds name to c in the type namespace, reporting whether an
// existing binding was replaced. Callers implementing the "warn on
// collision, replace" policy (spec.md §4.8 phase 1) should check the
// returned bool and emit a diagnostic themselves.
func (r *Registry) Register(name string, c Codec) (replaced bool) {
	_, replaced = r.types[name]
	r.types[name] = c

	return replaced
}

// SetAlias rebinds one of the configurable aliases (or any other name) to
// a different codec, e.g. to change FwOpcode's width at CLI startup. Must
// only be called before the first Decode call per the read-only-after-
// startup resource model (spec.md §5).
func (r *Registry) SetAlias(name string, c Codec) {
	r.types[name] = c
}

// Names returns every registered type name, for diagnostics and tests.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.types))
	for n := range r.types {
		names = append(names, n)
	}

	return names
}
