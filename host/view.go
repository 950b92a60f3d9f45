package host

import (
	"encoding/binary"

	"github.com/piksel/mbconf"
)

// RawDescriptor is the host's decoding of a Query Field-descriptor
// response (spec §4.2): flags, variant, the constraint's raw 8 bytes
// (the wire form carries no constraint tag, so their shape must be
// inferred from the flags and value type), and name, plus any
// separately-fetched help/icon text.
type RawDescriptor struct {
	Flags          mbconf.Flags
	Variant        uint8
	ConstraintWire [8]byte
	Name           string
	Help           string
	Icon           string
}

func decodeRawDescriptor(resp [mbconf.MessageLength]byte) RawDescriptor {
	d := RawDescriptor{
		Flags:   mbconf.Flags(resp[1]),
		Variant: resp[2],
	}
	copy(d.ConstraintWire[:], resp[3:11])
	d.Name = trimZero(resp[11:])
	return d
}

// AsRange reinterprets the constraint bytes as a Range(start, end) of
// i32, valid when the descriptor's constraint kind is Range.
func (d RawDescriptor) AsRange() (start, end int32) {
	start = int32(binary.LittleEndian.Uint32(d.ConstraintWire[0:4]))
	end = int32(binary.LittleEndian.Uint32(d.ConstraintWire[4:8]))
	return
}

// AsLength reinterprets the constraint bytes as a Length(max) of u64.
func (d RawDescriptor) AsLength() uint64 {
	return binary.LittleEndian.Uint64(d.ConstraintWire[0:8])
}

// AsValues reinterprets the constraint bytes as Values{count, min,
// maxOrSuggested}.
func (d RawDescriptor) AsValues() (count uint32, min, maxOrSuggested uint16) {
	count = binary.LittleEndian.Uint32(d.ConstraintWire[0:4])
	min = binary.LittleEndian.Uint16(d.ConstraintWire[4:6])
	maxOrSuggested = binary.LittleEndian.Uint16(d.ConstraintWire[6:8])
	return
}

// SectionView is a discovered section: its own descriptor plus its
// layout (the field references it groups, in authoring order).
type SectionView struct {
	Index  uint8
	Desc   RawDescriptor
	Layout []mbconf.FieldRef
}

// FieldViews joins this section's layout against the given property and
// info descriptor tables, producing the composed (FieldRef, descriptor)
// list a UI renders (spec §4.6).
func (s SectionView) FieldViews(props, infos []RawDescriptor) []FieldView {
	views := make([]FieldView, 0, len(s.Layout))
	for _, ref := range s.Layout {
		var desc RawDescriptor
		switch ref.Kind {
		case mbconf.KindProp:
			if int(ref.Index) < len(props) {
				desc = props[ref.Index]
			}
		case mbconf.KindInfo:
			if int(ref.Index) < len(infos) {
				desc = infos[ref.Index]
			}
		}
		views = append(views, FieldView{Ref: ref, Desc: desc})
	}
	return views
}

// FieldView pairs a field reference with its resolved descriptor.
type FieldView struct {
	Ref  mbconf.FieldRef
	Desc RawDescriptor
}

// Schema is the host's reconstructed picture of a device's full schema
// (spec §4.6).
type Schema struct {
	Sections []SectionView
	Props    []RawDescriptor
	Infos    []RawDescriptor
	Actions  []RawDescriptor
}

// Section returns the composed field views for section idx, or nil if out
// of range.
func (s *Schema) Section(idx int) []FieldView {
	if idx < 0 || idx >= len(s.Sections) {
		return nil
	}
	return s.Sections[idx].FieldViews(s.Props, s.Infos)
}
