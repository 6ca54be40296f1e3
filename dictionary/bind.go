package dictionary

import (
	"fmt"

	"github.com/fprime-community/fpdt/codec"
)

// Bind runs the five binding phases once over every declaration merged so
// far (spec.md §4.8): enum codecs, then array codecs, then struct codecs,
// then command/event/channel argument resolution, then parameter codecs
// resolved through their sibling "set" command. Type resolution is
// single-pass — a member referencing a type declared later in the same
// document is left unbound with a warning, matching the documented
// limitation. Calling Bind twice is an error.
func (d *Dictionary) Bind() error {
	if d.bound {
		return fmt.Errorf("fpdt: dictionary: Bind called twice")
	}
	d.bound = true

	d.bindEnums()
	d.bindArrays()
	d.bindSerializables()
	d.bindCommandsEventsChannels()
	d.bindParameters()

	return nil
}

func (d *Dictionary) registerType(name string, c codec.Codec) {
	if replaced := d.reg.Register(name, c); replaced {
		d.diag.Warn("type_namespace_collision", fmt.Sprintf("type %q already registered, replacing", name), nil)
	}
}

func (d *Dictionary) bindEnums() {
	underlying, ok := d.reg.Lookup("FwEnumStore")
	if !ok {
		d.diag.Warn("binding_failure", "FwEnumStore alias not registered; skipping all enum binding", nil)
		return
	}

	for _, def := range d.enums {
		byValue := make(map[int64]string, len(def.Items))
		for _, item := range def.Items {
			byValue[item.Value] = item.Name
		}

		d.registerType(def.Name, codec.NewEnum(underlying, byValue))
	}
}

func (d *Dictionary) bindArrays() {
	for _, def := range d.arrays {
		elem, ok := d.reg.Lookup(def.ElementTypeName)
		if !ok {
			d.diag.Warn("binding_failure", fmt.Sprintf("array %q: element type %q not found in type namespace", def.Name, def.ElementTypeName), nil)
			continue
		}

		d.registerType(def.Name, codec.NewArray(elem, def.Size))
	}
}

func (d *Dictionary) bindSerializables() {
	for _, def := range d.serializables {
		members := make([]codec.Member, 0, len(def.Members))
		allResolved := true

		for _, m := range def.Members {
			memberCodec, ok := d.reg.Lookup(m.TypeName)
			if !ok {
				d.diag.Warn("binding_failure", fmt.Sprintf("serializable %q: member %q type %q not found in type namespace", def.Name, m.Name, m.TypeName), nil)
				allResolved = false
				continue
			}
			members = append(members, codec.Member{Name: m.Name, Codec: memberCodec})
		}

		if !allResolved {
			d.diag.Warn("binding_failure", fmt.Sprintf("serializable %q: not all member types resolved, skipping registration", def.Name), nil)
			continue
		}

		d.registerType(def.Name, codec.NewStructure(members))
	}
}

// argsCodec resolves a command's or event's argument list into a single
// ordered Structure codec, or nil (with a warning per unresolved argument)
// when any argument's type name does not resolve.
func (d *Dictionary) argsCodec(topologyName string, args []ArgumentDef) codec.Codec {
	if len(args) == 0 {
		return codec.NewStructure(nil)
	}

	members := make([]codec.Member, 0, len(args))
	for _, arg := range args {
		argCodec, ok := d.reg.Lookup(arg.TypeName)
		if !ok {
			d.diag.Warn("binding_failure", fmt.Sprintf("%q: argument %q type %q not found in type namespace", topologyName, arg.Name, arg.TypeName), nil)
			return nil
		}
		members = append(members, codec.Member{Name: arg.Name, Codec: argCodec})
	}

	return codec.NewStructure(members)
}

func (d *Dictionary) bindCommandsEventsChannels() {
	for _, cmd := range d.commands {
		if c := d.argsCodec(cmd.TopologyName, cmd.Args); c != nil {
			d.commandArgCodecs[cmd.Opcode] = c
		}
	}

	for _, ev := range d.events {
		if c := d.argsCodec(ev.TopologyName, ev.Args); c != nil {
			d.eventArgCodecs[ev.ID] = c
		}
	}

	for _, ch := range d.channels {
		chanCodec, ok := d.reg.Lookup(ch.TypeName)
		if !ok {
			d.diag.Warn("binding_failure", fmt.Sprintf("channel %q: type %q not found in type namespace", ch.TopologyName, ch.TypeName), nil)
			continue
		}
		d.channelCodecs[ch.ID] = chanCodec
	}
}

// bindParameters resolves each parameter's codec to the sole argument
// codec of its sibling "<name>_PRM_SET" command, warning (and leaving the
// parameter unresolved) if that command is missing or does not have
// exactly one argument.
func (d *Dictionary) bindParameters() {
	for _, param := range d.parameters {
		setCmd, ok := d.commands[param.SetCommandKey]
		if !ok {
			d.diag.Warn("binding_failure", fmt.Sprintf("parameter %q: sibling command %q.%q not found", param.TopologyName, param.SetCommandKey.Component, param.SetCommandKey.Mnemonic), nil)
			continue
		}

		if len(setCmd.Args) != 1 {
			d.diag.Warn("binding_failure", fmt.Sprintf("parameter %q: sibling command %q has %d arguments, expected exactly 1", param.TopologyName, setCmd.TopologyName, len(setCmd.Args)), nil)
			continue
		}

		argCodec, ok := d.reg.Lookup(setCmd.Args[0].TypeName)
		if !ok {
			d.diag.Warn("binding_failure", fmt.Sprintf("parameter %q: type %q not found in type namespace", param.TopologyName, setCmd.Args[0].TypeName), nil)
			continue
		}

		d.parameterCodecs[param.ID] = argCodec
	}
}
