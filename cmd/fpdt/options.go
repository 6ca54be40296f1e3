package main

// Options is the documented CLI surface (spec.md §6): positional input,
// output format selection, repeatable dictionary merging, the inert
// plug-in import flag, record-type selection, and one flag per
// configurable alias/flag from the type system.
type Options struct {
	Positional struct {
		Input string `positional-arg-name:"input" description:"input file (default: stdin)"`
	} `positional-args:"yes"`

	OutputFormat string   `long:"output-format" description:"json, tsv, or vnlog" default:"vnlog"`
	Dictionary   []string `long:"dictionary" description:"XML dictionary file, repeatable; merged in order given"`
	Import       []string `long:"import" description:"plug-in codec module (accepted, not acted upon)"`
	RecordType   string   `long:"record-type" description:"ComLoggerRecord, FprimeGdsRecord, FprimeGdsStream, or PrmDbRecord" default:"ComLoggerRecord"`
	Verbose      []bool   `short:"v" long:"verbose" description:"log at debug level on stderr (warnings are always shown)"`

	// One flag per configurable type alias (spec.md §4.2); each takes the
	// alias's wire width in bytes. A width of 0 (the default) leaves the
	// registry's built-in default for that alias untouched.
	FwBuffSize         int `long:"FwBuffSize" description:"width in bytes of the FwBuffSize alias"`
	FwChanId           int `long:"FwChanId" description:"width in bytes of the FwChanId alias"`
	FwEnumStore        int `long:"FwEnumStore" description:"width in bytes of the FwEnumStore alias"`
	FwEventId          int `long:"FwEventId" description:"width in bytes of the FwEventId alias"`
	FwOpcode           int `long:"FwOpcode" description:"width in bytes of the FwOpcode alias"`
	FwPacketDescriptor int `long:"FwPacketDescriptor" description:"width in bytes of the FwPacketDescriptor alias"`
	FwPrmId            int `long:"FwPrmId" description:"width in bytes of the FwPrmId alias"`
	FwTimeBaseStore    int `long:"FwTimeBaseStore" description:"width in bytes of the FwTimeBaseStore alias"`
	FwTimeContextStore int `long:"FwTimeContextStore" description:"width in bytes of the FwTimeContextStore alias"`
	FwTlmPacketizeId   int `long:"FwTlmPacketizeId" description:"width in bytes of the FwTlmPacketizeId alias"`

	// One flag per configurable behavior flag (spec.md §6's configuration
	// flags table).
	UseTimeBase      string `long:"USE_TIME_BASE" description:"true/false: Time includes the base field" default:"true"`
	UseTimeContext   string `long:"USE_TIME_CONTEXT" description:"true/false: Time includes the context field" default:"true"`
	TrueByte         string `long:"TRUE_BYTE" description:"hex byte Bool encodes true as" default:"0xFF"`
	FalseByte        string `long:"FALSE_BYTE" description:"hex byte Bool encodes false as" default:"0x00"`
}
