package mbconf

import "fmt"

// FieldRef names a field (property or info) by kind and index, as it
// appears in a section's layout (spec §3).
type FieldRef struct {
	Kind  EntryKind // KindProp or KindInfo
	Index uint8
}

// layoutRow is one row of the flat, section-sorted layout table (spec
// §3).
type layoutRow struct {
	Section uint8
	Ref     FieldRef
}

// maxLayoutEntriesPerSection is the per-section cap imposed by frame size:
// 62 payload bytes after the 1-byte header, two bytes per entry (spec §9).
const maxLayoutEntriesPerSection = 31

// Schema is the complete, immutable-after-construction set of descriptor
// tables for a device: sections, properties, infos, actions, and the flat
// layout table joining sections to fields. It plays the role the teacher's
// sysfs-discovered device table plays for USB devices, except the schema
// here is declared once at build time rather than discovered at runtime.
type Schema struct {
	sections []EntryDesc
	props    []EntryDesc
	infos    []EntryDesc
	actions  []EntryDesc
	layout   []layoutRow
}

// NewSchema builds a Schema from its constituent tables. Indices within
// each kind are dense from zero, in slice order; the layout must already
// be sorted by section (spec §3).
func NewSchema(sections, props, infos, actions []EntryDesc, layout []FieldRef2Section) *Schema {
	if len(sections) > 255 || len(props) > 255 || len(infos) > 255 || len(actions) > 255 {
		panic("mbconf: schema exceeds 255 entries in some kind")
	}
	for _, table := range [][]EntryDesc{sections, props, infos, actions} {
		for i := range table {
			if err := table[i].validateDefault(); err != nil {
				panic(fmt.Sprintf("mbconf: descriptor %q: %v", table[i].Name, err))
			}
		}
	}
	s := &Schema{sections: sections, props: props, infos: infos, actions: actions}
	for _, row := range layout {
		s.layout = append(s.layout, layoutRow{Section: row.Section, Ref: row.Ref})
	}
	return s
}

// FieldRef2Section is the authoring-time input form of a layout row: a
// field reference plus the section it belongs to. NewSchema copies these
// into the internal flat table.
type FieldRef2Section struct {
	Section uint8
	Ref     FieldRef
}

func (s *Schema) SectionCount() int { return len(s.sections) }
func (s *Schema) PropCount() int    { return len(s.props) }
func (s *Schema) InfoCount() int    { return len(s.infos) }
func (s *Schema) ActionCount() int  { return len(s.actions) }

// Section returns the descriptor for section index idx, or nil if out of
// range.
func (s *Schema) Section(idx uint8) *EntryDesc {
	if int(idx) >= len(s.sections) {
		return nil
	}
	return &s.sections[idx]
}

// Prop returns the descriptor for property index idx, or nil if out of
// range.
func (s *Schema) Prop(idx uint8) *EntryDesc {
	if int(idx) >= len(s.props) {
		return nil
	}
	return &s.props[idx]
}

// Info returns the descriptor for info index idx, or nil if out of range.
func (s *Schema) Info(idx uint8) *EntryDesc {
	if int(idx) >= len(s.infos) {
		return nil
	}
	return &s.infos[idx]
}

// Action returns the descriptor for action index idx, or nil if out of
// range.
func (s *Schema) Action(idx uint8) *EntryDesc {
	if int(idx) >= len(s.actions) {
		return nil
	}
	return &s.actions[idx]
}

// Layout returns, in authoring order, the field references belonging to
// section idx, capped at maxLayoutEntriesPerSection (spec §4.5, §9): when
// a section declares more entries than fit, the remainder is silently
// dropped, with no indication sent to the host.
func (s *Schema) Layout(idx uint8) []FieldRef {
	var out []FieldRef
	for _, row := range s.layout {
		if row.Section != idx {
			continue
		}
		if len(out) >= maxLayoutEntriesPerSection {
			break
		}
		out = append(out, row.Ref)
	}
	return out
}

// Descriptor returns the descriptor for an arbitrary (kind, index) pair of
// any of the four kinds, or nil if kind is unknown or the index is out of
// range. Used by the dispatcher to answer Query commands.
func (s *Schema) Descriptor(kind EntryKind, idx uint8) *EntryDesc {
	switch kind {
	case KindProp:
		return s.Prop(idx)
	case KindInfo:
		return s.Info(idx)
	case KindSection:
		return s.Section(idx)
	case KindAction:
		return s.Action(idx)
	}
	return nil
}
