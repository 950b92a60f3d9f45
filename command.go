package mbconf

import "encoding/binary"

// CommandTag is the one-byte request discriminator (spec §4.4).
type CommandTag uint8

const (
	CmdReadProp  CommandTag = 'r'
	CmdWriteProp CommandTag = 'w'
	CmdReadInfo  CommandTag = 'R'
	CmdWriteInfo CommandTag = 'W'
	CmdQuery     CommandTag = 'q'
	CmdAction    CommandTag = 'a'
	CmdMeta      CommandTag = 'm'
	CmdNoop      CommandTag = 0
)

// Command is a decoded request frame: one of the variants below, selected
// by Tag. Only the fields relevant to Tag are populated.
type Command struct {
	Tag CommandTag

	Index uint8 // ReadProp/WriteProp/ReadInfo/WriteInfo/Action index

	EntryKind   EntryKind // Query
	EntryIndex  uint8     // Query
	QueryTarget QueryTarget
	OptionIndex uint16 // Query Option

	Value *FieldValue // WriteProp/WriteInfo, already bound to its descriptor
}

// frameReader is a minimal read cursor over a request frame's bytes,
// grounded on the cursor-over-fixed-buffer idea used for the codec's wire
// forms: it tracks a read position into a 64-byte array without ever
// copying out the remainder.
type frameReader struct {
	buf [MessageLength]byte
	pos int
}

func newFrameReader(frame [MessageLength]byte) *frameReader {
	return &frameReader{buf: frame}
}

func (r *frameReader) byte() (byte, bool) {
	if r.pos >= MessageLength {
		return 0, false
	}
	b := r.buf[r.pos]
	r.pos++
	return b, true
}

func (r *frameReader) u16() (uint16, bool) {
	if r.pos+2 > MessageLength {
		return 0, false
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos : r.pos+2])
	r.pos += 2
	return v, true
}

// rest returns every byte from the current position to the end of the
// frame. It does not distinguish logical payload length from trailing
// zero padding. ParseCommand passes this whole remainder to the codec,
// so a write's recorded length is the remainder's size (62 bytes after a
// tag and an index, or half that as an option count for Options fields),
// trailing zeros included.
func (r *frameReader) rest() []byte {
	if r.pos >= MessageLength {
		return nil
	}
	b := r.buf[r.pos:]
	r.pos = MessageLength
	return b
}

// ParseCommand decodes a request frame into a typed Command, validating
// indices and query targets against schema as it goes, and — for write
// commands — binding the payload to the target descriptor through the
// field-value codec (spec §4.4).
func ParseCommand(schema *Schema, frame [MessageLength]byte) (*Command, error) {
	r := newFrameReader(frame)
	tagByte, ok := r.byte()
	if !ok {
		return nil, NewError(ErrMissingArgument)
	}
	tag := CommandTag(tagByte)

	switch tag {
	case CmdNoop:
		return &Command{Tag: CmdNoop}, nil
	case CmdMeta:
		return &Command{Tag: CmdMeta}, nil
	case CmdReadProp, CmdReadInfo, CmdAction:
		idx, ok := r.byte()
		if !ok {
			return nil, NewError(ErrMissingArgument)
		}
		if err := validateIndex(schema, tag, idx); err != nil {
			return nil, err
		}
		return &Command{Tag: tag, Index: idx}, nil
	case CmdWriteProp, CmdWriteInfo:
		idx, ok := r.byte()
		if !ok {
			return nil, NewError(ErrMissingArgument)
		}
		if err := validateIndex(schema, tag, idx); err != nil {
			return nil, err
		}
		payload := r.rest()
		if len(payload) == 0 {
			return nil, NewError(ErrInvalidData)
		}
		var desc *EntryDesc
		if tag == CmdWriteProp {
			desc = schema.Prop(idx)
		} else {
			desc = schema.Info(idx)
		}
		value, err := ParseFromMessage(desc, payload)
		if err != nil {
			return nil, err
		}
		return &Command{Tag: tag, Index: idx, Value: value}, nil
	case CmdQuery:
		return parseQuery(schema, r)
	default:
		return nil, NewError(ErrInvalidCommand)
	}
}

func validateIndex(schema *Schema, tag CommandTag, idx uint8) error {
	switch tag {
	case CmdReadProp, CmdWriteProp:
		if int(idx) >= schema.PropCount() {
			return NewError(ErrInvalidField)
		}
	case CmdReadInfo, CmdWriteInfo:
		if int(idx) >= schema.InfoCount() {
			return NewError(ErrInvalidField)
		}
	case CmdAction:
		if int(idx) >= schema.ActionCount() {
			return NewError(ErrInvalidAction)
		}
	}
	return nil
}

func parseQuery(schema *Schema, r *frameReader) (*Command, error) {
	kindByte, ok := r.byte()
	if !ok {
		return nil, NewError(ErrMissingArgument)
	}
	kind := EntryKind(kindByte)
	if !kind.Valid() {
		return nil, NewError(ErrInvalidEntry)
	}

	idx, ok := r.byte()
	if !ok {
		return nil, NewError(ErrMissingArgument)
	}
	if err := validateEntryIndex(schema, kind, idx); err != nil {
		return nil, err
	}

	targetByte, ok := r.byte()
	if !ok {
		return nil, NewError(ErrMissingArgument)
	}
	target := QueryTarget(targetByte)

	cmd := &Command{
		Tag:         CmdQuery,
		EntryKind:   kind,
		EntryIndex:  idx,
		QueryTarget: target,
	}

	switch target {
	case QueryField, QueryHelp, QueryIcon:
		return cmd, nil
	case QueryLayout:
		if kind != KindSection {
			return nil, NewError(ErrInvalidQuery)
		}
		return cmd, nil
	case QueryOption:
		optIdx, ok := r.u16()
		if !ok {
			return nil, NewError(ErrMissingArgument)
		}
		cmd.OptionIndex = optIdx
		return cmd, nil
	default:
		return nil, NewError(ErrInvalidQuery)
	}
}

func validateEntryIndex(schema *Schema, kind EntryKind, idx uint8) error {
	switch kind {
	case KindSection:
		if int(idx) >= schema.SectionCount() {
			return NewError(ErrInvalidSection)
		}
	case KindProp:
		if int(idx) >= schema.PropCount() {
			return NewError(ErrInvalidField)
		}
	case KindInfo:
		if int(idx) >= schema.InfoCount() {
			return NewError(ErrInvalidField)
		}
	case KindAction:
		if int(idx) >= schema.ActionCount() {
			return NewError(ErrInvalidAction)
		}
	}
	return nil
}
