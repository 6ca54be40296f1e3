package codec

import (
	"encoding/json"
	"fmt"

	"github.com/fprime-community/fpdt/bytestream"
)

// Member is one named field of a Structure codec, in declared wire order.
type Member struct {
	Name  string
	Codec Codec
}

// Structure decodes/encodes an ordered list of named members. Members
// always appear in declared order on the wire, matching the invariant in
// spec.md §3.
//
// Decode/Encode produce/consume *StructValue.
type Structure struct {
	Members []Member
}

// NewStructure constructs a Structure codec over the given ordered members.
func NewStructure(members []Member) *Structure {
	return &Structure{Members: members}
}

// StructValue is the decoded representation of a Structure: an
// order-preserving set of named values with named lookup.
type StructValue struct {
	order  []string
	values map[string]Value
}

// NewStructValue builds a StructValue from ordered (name, value) pairs.
func NewStructValue(names []string, values map[string]Value) *StructValue {
	return &StructValue{order: names, values: values}
}

// Names returns the member names in declared wire order.
func (s *StructValue) Names() []string { return s.order }

// Get returns the named member's value, and whether it was present.
func (s *StructValue) Get(name string) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// MarshalJSON renders the structure as a JSON object with members in
// declared order.
func (s *StructValue) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, name := range s.order {
		if i > 0 {
			buf = append(buf, ',')
		}

		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')

		val, err := json.Marshal(s.values[name])
		if err != nil {
			return nil, err
		}
		buf = append(buf, val...)
	}
	buf = append(buf, '}')

	return buf, nil
}

func (st *Structure) Decode(r *bytestream.Reader, _ int) (Value, error) {
	order := make([]string, 0, len(st.Members))
	values := make(map[string]Value, len(st.Members))

	for _, m := range st.Members {
		v, err := m.Codec.Decode(r, NoLength)
		if err != nil {
			return nil, fmt.Errorf("fpdt: codec: member %q: %w", m.Name, err)
		}
		order = append(order, m.Name)
		values[m.Name] = v
	}

	return NewStructValue(order, values), nil
}

func (st *Structure) Encode(v Value, w *bytestream.Writer) error {
	sv, ok := v.(*StructValue)
	if !ok {
		return typeMismatch("*StructValue", v)
	}

	for _, m := range st.Members {
		mv, ok := sv.Get(m.Name)
		if !ok {
			return fmt.Errorf("fpdt: codec: missing member %q", m.Name)
		}

		if err := m.Codec.Encode(mv, w); err != nil {
			return fmt.Errorf("fpdt: codec: member %q: %w", m.Name, err)
		}
	}

	return nil
}
