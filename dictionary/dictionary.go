// Package dictionary parses F Prime XML dictionary documents and binds
// their declarations into codec.Registry entries: enum, array, and struct
// type definitions first, then command/event/channel argument codecs, then
// parameter codecs resolved through their sibling "set" command. It
// satisfies packet.IdentifierResolver and record.ParameterResolver so a
// bound Dictionary can be handed directly to the packet and record
// decoders.
package dictionary

import (
	"fmt"

	"github.com/fprime-community/fpdt/codec"
	"github.com/fprime-community/fpdt/diagnostics"
	"github.com/fprime-community/fpdt/fwtype"
)

type commandKey struct{ Component, Mnemonic string }
type eventKey struct{ Component, Name string }
type channelKey struct{ Component, Name string }
type parameterKey struct{ Component, Name string }

// EnumDef is a parsed `<enum>` declaration.
type EnumDef struct {
	Name  string
	Items []EnumItem
}

// EnumItem is one `<item>` inside an enum declaration.
type EnumItem struct {
	Name        string
	Value       int64
	Description string
}

// MemberDef is one `<member>` inside a `<serializable>` declaration.
type MemberDef struct {
	Name            string
	TypeName        string
	Length          int
	HasLength       bool
	FormatSpecifier string
}

// SerializableDef is a parsed `<serializable>` declaration.
type SerializableDef struct {
	Name    string
	Members []MemberDef
}

// ArrayDef is a parsed `<array>` declaration.
type ArrayDef struct {
	Name            string
	ElementTypeName string
	Size            int
}

// ArgumentDef is one `<arg>` inside a command's or event's `<args>` block.
type ArgumentDef struct {
	Name        string
	TypeName    string
	Description string
}

// CommandDef is a parsed `<command>` declaration.
type CommandDef struct {
	Component    string
	Mnemonic     string
	TopologyName string
	Opcode       uint32
	Description  string
	Args         []ArgumentDef
}

// EventDef is a parsed `<event>` declaration.
type EventDef struct {
	Component    string
	Name         string
	TopologyName string
	ID           uint32
	Severity     fwtype.EventSeverity
	FormatString string
	Description  string
	Args         []ArgumentDef
}

// ChannelDef is a parsed `<channel>` declaration.
type ChannelDef struct {
	Component    string
	Name         string
	TopologyName string
	ID           uint32
	TypeName     string
	FormatString string
	Description  string
}

// ParameterDef is a parsed `<parameter>` declaration.
type ParameterDef struct {
	Component     string
	Name          string
	TopologyName  string
	ID            uint32
	Default       string
	SetCommandKey commandKey
}

// Dictionary holds every declaration merged from one or more parsed XML
// documents, plus the codecs bound to them once Bind runs. The seven keyed
// collections and four ID indexes mirror spec.md §3's data model.
type Dictionary struct {
	reg  *codec.Registry
	diag diagnostics.Sink

	enums         map[string]*EnumDef
	serializables map[string]*SerializableDef
	arrays        map[string]*ArrayDef
	commands      map[commandKey]*CommandDef
	events        map[eventKey]*EventDef
	channels      map[channelKey]*ChannelDef
	parameters    map[parameterKey]*ParameterDef

	commandsByOpcode map[uint32]*CommandDef
	eventsByID       map[uint32]*EventDef
	channelsByID     map[uint32]*ChannelDef
	parametersByID   map[uint32]*ParameterDef

	commandArgCodecs map[uint32]codec.Codec
	channelCodecs    map[uint32]codec.Codec
	eventArgCodecs   map[uint32]codec.Codec
	parameterCodecs  map[uint32]codec.Codec

	bound bool
}

// New creates an empty Dictionary over reg. reg's type namespace is
// extended in place as enum/array/struct definitions bind; diag receives
// one warning per unresolved reference or namespace collision.
func New(reg *codec.Registry, diag diagnostics.Sink) *Dictionary {
	return &Dictionary{
		reg:  reg,
		diag: diag,

		enums:         make(map[string]*EnumDef),
		serializables: make(map[string]*SerializableDef),
		arrays:        make(map[string]*ArrayDef),
		commands:      make(map[commandKey]*CommandDef),
		events:        make(map[eventKey]*EventDef),
		channels:      make(map[channelKey]*ChannelDef),
		parameters:    make(map[parameterKey]*ParameterDef),

		commandsByOpcode: make(map[uint32]*CommandDef),
		eventsByID:       make(map[uint32]*EventDef),
		channelsByID:     make(map[uint32]*ChannelDef),
		parametersByID:   make(map[uint32]*ParameterDef),

		commandArgCodecs: make(map[uint32]codec.Codec),
		channelCodecs:    make(map[uint32]codec.Codec),
		eventArgCodecs:   make(map[uint32]codec.Codec),
		parameterCodecs:  make(map[uint32]codec.Codec),
	}
}

// Merge parses one XML dictionary document and folds its declarations into
// the accumulated collections. Call Merge for every --dictionary file
// before calling Bind once. Merging after Bind is an error: the binder's
// single-pass resolution must see every declaration up front.
func (d *Dictionary) Merge(data []byte) error {
	if d.bound {
		return fmt.Errorf("fpdt: dictionary: cannot merge after Bind")
	}

	doc, err := parseXML(data)
	if err != nil {
		return err
	}

	for _, e := range doc.Enums {
		items := make([]EnumItem, 0, len(e.Items))
		for _, item := range e.Items {
			var value int64
			if _, err := fmt.Sscanf(item.Value, "%d", &value); err != nil {
				d.diag.Warn("malformed_enum_item", fmt.Sprintf("enum %q item %q has non-integer value %q", e.Name, item.Name, item.Value), nil)
				continue
			}
			items = append(items, EnumItem{Name: item.Name, Value: value, Description: item.Description})
		}
		d.enums[e.Name] = &EnumDef{Name: e.Name, Items: items}
	}

	for _, s := range doc.Serializables {
		members := make([]MemberDef, 0, len(s.Members))
		for _, m := range s.Members {
			length, hasLength := parseLength(m.Length)
			members = append(members, MemberDef{
				Name:            m.Name,
				TypeName:        m.TypeName,
				Length:          length,
				HasLength:       hasLength,
				FormatSpecifier: m.FormatSpecifier,
			})
		}
		d.serializables[s.TypeName] = &SerializableDef{Name: s.TypeName, Members: members}
	}

	for _, a := range doc.Arrays {
		size, _ := parseLength(a.Size)
		d.arrays[a.Name] = &ArrayDef{Name: a.Name, ElementTypeName: a.ElementTypeName, Size: size}
	}

	for _, c := range doc.Commands {
		opcode, err := parseID(c.Opcode)
		if err != nil {
			d.diag.Warn("malformed_command", err.Error(), nil)
			continue
		}

		cmd := &CommandDef{
			Component:    c.Component,
			Mnemonic:     c.Mnemonic,
			TopologyName: c.Component + "." + c.Mnemonic,
			Opcode:       opcode,
			Description:  c.Description,
			Args:         convertArgs(c.Args),
		}
		key := commandKey{Component: c.Component, Mnemonic: c.Mnemonic}
		d.commands[key] = cmd
		d.commandsByOpcode[opcode] = cmd
	}

	for _, e := range doc.Events {
		id, err := parseID(e.ID)
		if err != nil {
			d.diag.Warn("malformed_event", err.Error(), nil)
			continue
		}

		ev := &EventDef{
			Component:    e.Component,
			Name:         e.Name,
			TopologyName: e.Component + "." + e.Name,
			ID:           id,
			Severity:     parseSeverity(e.Severity),
			FormatString: e.FormatString,
			Description:  e.Description,
			Args:         convertArgs(e.Args),
		}
		d.events[eventKey{Component: e.Component, Name: e.Name}] = ev
		d.eventsByID[id] = ev
	}

	for _, c := range doc.Channels {
		id, err := parseID(c.ID)
		if err != nil {
			d.diag.Warn("malformed_channel", err.Error(), nil)
			continue
		}

		ch := &ChannelDef{
			Component:    c.Component,
			Name:         c.Name,
			TopologyName: c.Component + "." + c.Name,
			ID:           id,
			TypeName:     c.TypeName,
			FormatString: c.FormatString,
			Description:  c.Description,
		}
		d.channels[channelKey{Component: c.Component, Name: c.Name}] = ch
		d.channelsByID[id] = ch
	}

	for _, p := range doc.Parameters {
		id, err := parseID(p.ID)
		if err != nil {
			d.diag.Warn("malformed_parameter", err.Error(), nil)
			continue
		}

		param := &ParameterDef{
			Component:     p.Component,
			Name:          p.Name,
			TopologyName:  p.Component + "." + p.Name,
			ID:            id,
			Default:       p.Default,
			SetCommandKey: commandKey{Component: p.Component, Mnemonic: p.Name + "_PRM_SET"},
		}
		d.parameters[parameterKey{Component: p.Component, Name: p.Name}] = param
		d.parametersByID[id] = param
	}

	return nil
}

func convertArgs(args []xmlArgument) []ArgumentDef {
	out := make([]ArgumentDef, 0, len(args))
	for _, a := range args {
		out = append(out, ArgumentDef{Name: a.Name, TypeName: a.TypeName, Description: a.Description})
	}

	return out
}

// CommandCodecByOpcode implements packet.IdentifierResolver.
func (d *Dictionary) CommandCodecByOpcode(opcode uint32) (codec.Codec, bool) {
	if _, ok := d.commandsByOpcode[opcode]; !ok {
		return nil, false
	}

	return d.commandArgCodecs[opcode], true
}

// ChannelCodecByID implements packet.IdentifierResolver.
func (d *Dictionary) ChannelCodecByID(id uint32) (codec.Codec, bool) {
	if _, ok := d.channelsByID[id]; !ok {
		return nil, false
	}

	return d.channelCodecs[id], true
}

// EventCodecByID implements packet.IdentifierResolver.
func (d *Dictionary) EventCodecByID(id uint32) (codec.Codec, bool) {
	if _, ok := d.eventsByID[id]; !ok {
		return nil, false
	}

	return d.eventArgCodecs[id], true
}

// ParameterCodecByID implements record.ParameterResolver.
func (d *Dictionary) ParameterCodecByID(id uint32) (codec.Codec, bool) {
	if _, ok := d.parametersByID[id]; !ok {
		return nil, false
	}

	return d.parameterCodecs[id], true
}

// Command looks up a command declaration by opcode, for render-layer
// metadata lookups (component, mnemonic).
func (d *Dictionary) Command(opcode uint32) (*CommandDef, bool) {
	c, ok := d.commandsByOpcode[opcode]
	return c, ok
}

// Event looks up an event declaration by ID, for render-layer metadata.
func (d *Dictionary) Event(id uint32) (*EventDef, bool) {
	e, ok := d.eventsByID[id]
	return e, ok
}

// Channel looks up a channel declaration by ID, for render-layer metadata.
func (d *Dictionary) Channel(id uint32) (*ChannelDef, bool) {
	c, ok := d.channelsByID[id]
	return c, ok
}
