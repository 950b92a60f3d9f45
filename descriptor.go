package mbconf

import "fmt"

// maxNameLength is MessageLength - 11: one byte OK marker, one byte flags,
// one byte variant, eight bytes constraint, leaving 53 bytes for the
// descriptor's name in a Query Field-descriptor response (spec §4.2). The
// OK marker is consumed by NewResponseFrame before EncodeDescriptor ever
// pushes a byte, so it counts against the name budget too.
const maxNameLength = MessageLength - 11

// OptionProvider produces the ordered label list backing an Options-valued
// field. It is the only behavior-bearing capability in the schema; every
// other piece of the descriptor model is plain data. Implementations must
// be deterministic, total up to Len(), and safe for concurrent reads.
type OptionProvider interface {
	Get(index uint16) (string, bool)
	Len() int
}

// StaticOptions is an OptionProvider backed by a literal, immutable slice.
type StaticOptions []string

func (s StaticOptions) Get(index uint16) (string, bool) {
	if int(index) >= len(s) {
		return "", false
	}
	return s[index], true
}

func (s StaticOptions) Len() int { return len(s) }

// EntryDesc is the immutable, statically-allocated metadata for one
// section, property, info field, or action (spec §3, §4.2).
type EntryDesc struct {
	Name       string
	Variant    uint8 // ValueType for fields, action-variant for actions, 0 for sections
	ReadOnly   bool
	Constraint Constraint
	Help       string
	HasHelp    bool
	Icon       string
	HasIcon    bool
	Default    DefaultValue
	HasDefault bool
	Multi      bool
	Options    OptionProvider
}

// NewEntryDesc validates and constructs a descriptor. It is meant to be
// called from the schema-building generators referenced in spec §9, at
// program init time; a descriptor that violates a build-time invariant is
// a programming error, so this panics rather than returning an error, the
// same way the teacher's struct literals are simply malformed Go if
// mis-populated.
func NewEntryDesc(name string, variant uint8) EntryDesc {
	if name == "" {
		panic("mbconf: descriptor name must not be empty")
	}
	if len(name) > maxNameLength {
		panic(fmt.Sprintf("mbconf: descriptor name %q exceeds %d bytes", name, maxNameLength))
	}
	return EntryDesc{Name: name, Variant: variant, Constraint: NoConstraint()}
}

// Flags derives the flag byte from the descriptor's observable state; it
// is never stored (spec §4.2).
func (d *EntryDesc) Flags() Flags {
	var f Flags
	if d.ReadOnly {
		f |= FlagReadOnly
	}
	if d.HasHelp {
		f |= FlagHasHelp
	}
	if d.HasIcon {
		f |= FlagHasIcon
	}
	if d.Constraint.Tag == ConstraintValues {
		f |= FlagHasOptions
	}
	if d.Multi {
		f |= FlagIsMulti
	}
	return f
}

// ValueType returns the descriptor's value type, valid only for property
// and info entries.
func (d *EntryDesc) ValueType() ValueType {
	return ValueType(d.Variant)
}

// validateDefault enforces the DefaultValue invariants of spec §3: the
// default's type must match the value type (Empty always allowed), a
// Values-constrained field requires a non-Empty default, and Status fields
// reject defaults outright.
func (d *EntryDesc) validateDefault() error {
	if !d.HasDefault || d.Default.Kind == DefaultEmpty {
		if d.Constraint.Tag == ConstraintValues && (!d.HasDefault || d.Default.Kind == DefaultEmpty) {
			return NewError(ErrInvalidData)
		}
		if d.ValueType() == ValueStatus && d.HasDefault {
			return NewError(ErrInvalidData)
		}
		return nil
	}
	if d.ValueType() == ValueStatus {
		return NewError(ErrInvalidData)
	}
	switch d.Default.Kind {
	case DefaultBytes:
		if d.ValueType() != ValueBytes {
			return NewError(ErrInvalidData)
		}
	case DefaultText:
		if d.ValueType() != ValueText && d.ValueType() != ValueSecret {
			return NewError(ErrInvalidData)
		}
	case DefaultInteger:
		if d.ValueType() != ValueInteger {
			return NewError(ErrInvalidData)
		}
	case DefaultOptions:
		if d.ValueType() != ValueOptions {
			return NewError(ErrInvalidData)
		}
	}
	return nil
}

// EncodeDescriptor serializes d into a Query Field-descriptor response
// body: flags (1) · variant (1) · constraint (8) · name, zero-padded to
// fill the remainder of the frame (spec §4.2).
func (d *EntryDesc) EncodeDescriptor() Frame {
	f := NewResponseFrame()
	f.Push(byte(d.Flags()))
	f.Push(d.Variant)
	c := d.Constraint.Encode()
	f.Extend(c[:])
	f.Extend([]byte(d.Name))
	return f
}
