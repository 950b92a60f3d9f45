package mbconf

import (
	"encoding/binary"
	"fmt"
)

// EntryKind is the single ASCII tag identifying what kind of schema entry
// an index refers to (spec §3).
type EntryKind uint8

const (
	KindSection EntryKind = 's'
	KindProp    EntryKind = 'c'
	KindInfo    EntryKind = 'i'
	KindAction  EntryKind = 'a'
)

var entryKindNames = map[EntryKind]string{
	KindSection: "Section",
	KindProp:    "Property",
	KindInfo:    "Info",
	KindAction:  "Action",
}

func (k EntryKind) String() string {
	if name, ok := entryKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%q)", byte(k))
}

// Valid reports whether k is one of the four defined entry kinds.
func (k EntryKind) Valid() bool {
	_, ok := entryKindNames[k]
	return ok
}

// ValueType is the wire tag for the value carried by a property or info
// field (spec §3).
type ValueType uint8

const (
	ValueText ValueType = iota + 1
	ValueSecret
	ValueInteger
	ValueBytes
	ValueStatus
	ValueOptions
)

var valueTypeNames = map[ValueType]string{
	ValueText:    "Text",
	ValueSecret:  "Secret",
	ValueInteger: "Integer",
	ValueBytes:   "Bytes",
	ValueStatus:  "Status",
	ValueOptions: "Options",
}

func (v ValueType) String() string {
	if name, ok := valueTypeNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(0x%.2X)", uint8(v))
}

// QueryTarget is the one-byte argument of a Query command (spec §4.4).
type QueryTarget uint8

const (
	QueryField  QueryTarget = 'f'
	QueryHelp   QueryTarget = 'h'
	QueryIcon   QueryTarget = 'i'
	QueryLayout QueryTarget = 'l'
	QueryOption QueryTarget = 'o'
)

// Flags is the descriptor flag bitmask (spec §3).
type Flags uint8

const (
	FlagReadOnly Flags = 1 << iota
	FlagHasHelp
	FlagHasIcon
	FlagHasOptions
	FlagIsMulti
)

func (f Flags) ReadOnly() bool   { return f&FlagReadOnly != 0 }
func (f Flags) HasHelp() bool    { return f&FlagHasHelp != 0 }
func (f Flags) HasIcon() bool    { return f&FlagHasIcon != 0 }
func (f Flags) HasOptions() bool { return f&FlagHasOptions != 0 }
func (f Flags) IsMulti() bool    { return f&FlagIsMulti != 0 }

// ConstraintTag identifies which Constraint variant is encoded in the
// 8-byte constraint field of a descriptor response. It is not itself
// transmitted; constraint shape is implied by whether all eight bytes are
// the Range, Length, or Values layout, which in turn is implied by the
// descriptor's ValueType. Kept as a small sum type for ergonomic Go use.
type ConstraintTag uint8

const (
	ConstraintNone ConstraintTag = iota
	ConstraintRange
	ConstraintLength
	ConstraintValues
)

// Constraint is the 8-byte, little-endian-encoded constraint attached to a
// descriptor (spec §3).
type Constraint struct {
	Tag ConstraintTag

	// Range
	RangeStart int32
	RangeEnd   int32

	// Length
	MaxLength uint64

	// Values
	Count          uint32
	Min            uint16
	MaxOrSuggested uint16
}

// NoConstraint is the zero-value, eight-zero-bytes constraint.
func NoConstraint() Constraint {
	return Constraint{Tag: ConstraintNone}
}

// RangeConstraint builds an i32 Range(start, end) constraint.
func RangeConstraint(start, end int32) Constraint {
	return Constraint{Tag: ConstraintRange, RangeStart: start, RangeEnd: end}
}

// LengthConstraint builds a u64 Length(max) constraint.
func LengthConstraint(max uint64) Constraint {
	return Constraint{Tag: ConstraintLength, MaxLength: max}
}

// ValuesConstraint builds a Values{count, min, maxOrSuggested} constraint.
func ValuesConstraint(count uint32, min, maxOrSuggested uint16) Constraint {
	return Constraint{Tag: ConstraintValues, Count: count, Min: min, MaxOrSuggested: maxOrSuggested}
}

// Encode writes the constraint's 8-byte little-endian wire form.
func (c Constraint) Encode() [8]byte {
	var out [8]byte
	switch c.Tag {
	case ConstraintRange:
		binary.LittleEndian.PutUint32(out[0:4], uint32(c.RangeStart))
		binary.LittleEndian.PutUint32(out[4:8], uint32(c.RangeEnd))
	case ConstraintLength:
		binary.LittleEndian.PutUint64(out[0:8], c.MaxLength)
	case ConstraintValues:
		binary.LittleEndian.PutUint32(out[0:4], c.Count)
		binary.LittleEndian.PutUint16(out[4:6], c.Min)
		binary.LittleEndian.PutUint16(out[6:8], c.MaxOrSuggested)
	}
	return out
}

// DefaultKind is the tag of a DefaultValue union.
type DefaultKind uint8

const (
	DefaultEmpty DefaultKind = iota
	DefaultBytes
	DefaultText
	DefaultInteger
	DefaultOptions
)

// DefaultValue is the tagged union of a descriptor's default value
// (spec §3).
type DefaultValue struct {
	Kind    DefaultKind
	Bytes   []byte
	Text    string
	Integer int64
	Options []uint16
}

// EmptyDefault is the zero-value default, legal for every value type.
func EmptyDefault() DefaultValue { return DefaultValue{Kind: DefaultEmpty} }
