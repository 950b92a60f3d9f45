package mbconf

import (
	"encoding/binary"
	"unicode/utf8"
)

// FieldValue is a 64-byte buffer bound to a descriptor (spec §3). It is
// kept internally in store form: byte 0 is the logical payload length,
// and the payload itself starts at byte 1. The two wire-facing directions
// (message form, store form) are produced on demand by IntoMessageBytes
// and IntoStoreBytes.
type FieldValue struct {
	desc *EntryDesc
	buf  [MessageLength]byte
}

// length returns the current store-form length byte.
func (fv *FieldValue) length() int {
	return int(fv.buf[0])
}

func (fv *FieldValue) setLength(n int) {
	fv.buf[0] = byte(n)
}

// payload returns the payload region (offsets 1..1+n) for the first n
// bytes, where n is the current length.
func (fv *FieldValue) payload() []byte {
	n := fv.length()
	if n > PayloadSize {
		n = PayloadSize
	}
	return fv.buf[1 : 1+n]
}

// Descriptor returns the descriptor this value is bound to.
func (fv *FieldValue) Descriptor() *EntryDesc {
	return fv.desc
}

// ParseFromMessage builds a FieldValue from a write-command payload: the
// length byte is set (payload.len()/2 for Options, payload.len()
// otherwise), payload bytes are copied verbatim starting at offset 1, and
// clamp() is applied before returning (spec §4.3(a)).
func ParseFromMessage(desc *EntryDesc, payload []byte) (*FieldValue, error) {
	if len(payload) == 0 {
		return nil, NewError(ErrInvalidData)
	}
	if len(payload) > PayloadSize {
		payload = payload[:PayloadSize]
	}
	fv := &FieldValue{desc: desc}
	copy(fv.buf[1:], payload)
	if desc.ValueType() == ValueOptions {
		fv.setLength(len(payload) / 2)
	} else {
		fv.setLength(len(payload))
	}
	fv.Clamp()
	return fv, nil
}

// isEmptyBlob reports whether blob counts as "unset": either byte 0 is 0,
// or every byte is 0xFF (spec §4.3(b), and the ambiguity noted in spec §9
// between a legitimate zero/0xFF value and "unset" is preserved here on
// purpose, not resolved).
func isEmptyBlob(blob [MessageLength]byte) bool {
	if blob[0] == 0 {
		return true
	}
	for _, b := range blob {
		if b != 0xFF {
			return false
		}
	}
	return true
}

// LoadFromStore builds a FieldValue from a persisted 64-byte blob. If the
// blob is empty, the descriptor's default is materialized into it (spec
// §4.3(b)); the asymmetry where Options records its length as a count of
// options rather than a byte count is intentional and preserved.
func LoadFromStore(desc *EntryDesc, blob [MessageLength]byte) (*FieldValue, error) {
	fv := &FieldValue{desc: desc, buf: blob}
	if !isEmptyBlob(blob) {
		return fv, nil
	}
	fv.buf = [MessageLength]byte{}
	def := desc.Default
	if !desc.HasDefault {
		def = EmptyDefault()
	}
	switch def.Kind {
	case DefaultEmpty:
		fv.setLength(0)
	case DefaultBytes:
		copy(fv.buf[1:], def.Bytes)
		fv.setLength(len(def.Bytes))
	case DefaultText:
		copy(fv.buf[1:], []byte(def.Text))
		fv.setLength(len(def.Text))
	case DefaultInteger:
		binary.LittleEndian.PutUint64(fv.buf[1:9], uint64(def.Integer))
		fv.setLength(8)
	case DefaultOptions:
		off := 1
		for _, o := range def.Options {
			if off+2 > MessageLength {
				break
			}
			binary.LittleEndian.PutUint16(fv.buf[off:off+2], o)
			off += 2
		}
		fv.setLength(len(def.Options))
	}
	return fv, nil
}

// IntoMessageBytes produces the wire (message) form: byte 0 becomes the
// ok marker, and for Secret fields the payload bytes are overwritten with
// '*' while preserving length (spec §4.3(c)).
func (fv *FieldValue) IntoMessageBytes() [MessageLength]byte {
	out := fv.buf
	out[0] = okMarker
	if fv.desc.ValueType() == ValueSecret {
		n := fv.length()
		if n > PayloadSize {
			n = PayloadSize
		}
		for i := 1; i <= n; i++ {
			out[i] = '*'
		}
	}
	return out
}

// IntoStoreBytes returns the 64-byte buffer verbatim; byte 0 retains its
// length (spec §4.3(d)).
func (fv *FieldValue) IntoStoreBytes() [MessageLength]byte {
	return fv.buf
}

// Clamp applies the constraint-driven clamping rules of spec §4.3 in
// place. It is idempotent: clamp(clamp(v)) == clamp(v).
func (fv *FieldValue) Clamp() {
	c := fv.desc.Constraint
	switch fv.desc.ValueType() {
	case ValueInteger:
		if c.Tag != ConstraintRange {
			return
		}
		n := fv.Integer()
		lo, hi := int64(c.RangeStart), int64(c.RangeEnd)
		if n < lo {
			n = lo
		}
		if n > hi {
			n = hi
		}
		fv.SetInteger(n)
	case ValueText, ValueSecret:
		if c.Tag != ConstraintRange {
			return
		}
		s := fv.Text()
		max := int(c.RangeEnd)
		if len(s) <= max {
			return
		}
		fv.SetText(truncateUTF8(s, max))
	case ValueOptions:
		if c.Tag != ConstraintValues {
			return
		}
		opts := fv.Options()
		kept := make([]uint16, 0, len(opts))
		for _, o := range opts {
			if int(o) < int(c.Count) {
				kept = append(kept, o)
			}
		}
		if int(c.MaxOrSuggested) < len(kept) {
			kept = kept[:c.MaxOrSuggested]
		}
		fv.SetOptions(kept)
	}
}

// truncateUTF8 truncates s to at most max bytes without splitting a
// codepoint.
func truncateUTF8(s string, max int) string {
	if max < 0 {
		max = 0
	}
	if len(s) <= max {
		return s
	}
	b := s[:max]
	for len(b) > 0 && !utf8.ValidString(b) {
		b = b[:len(b)-1]
	}
	return b
}

// Integer reads the payload as a signed 64-bit little-endian integer.
func (fv *FieldValue) Integer() int64 {
	if fv.length() < 8 {
		return 0
	}
	return int64(binary.LittleEndian.Uint64(fv.buf[1:9]))
}

// Text reads the payload as a UTF-8 string of the recorded length.
func (fv *FieldValue) Text() string {
	return string(fv.payload())
}

// Bytes reads the payload as an opaque byte slice of the recorded length.
func (fv *FieldValue) Bytes() []byte {
	p := fv.payload()
	out := make([]byte, len(p))
	copy(out, p)
	return out
}

// Status reads the payload as a status code plus trailing text.
func (fv *FieldValue) Status() (code byte, text string) {
	p := fv.payload()
	if len(p) == 0 {
		return 0, ""
	}
	return p[0], string(p[1:])
}

// Options reads the payload as a list of little-endian u16 indices. The
// recorded length is a count of options, not bytes (spec §4.3(b)/§9).
func (fv *FieldValue) Options() []uint16 {
	n := fv.length()
	out := make([]uint16, 0, n)
	off := 1
	for i := 0; i < n && off+2 <= MessageLength; i++ {
		out = append(out, binary.LittleEndian.Uint16(fv.buf[off:off+2]))
		off += 2
	}
	return out
}

// SetInteger writes payload beginning at byte 1 and records length 8.
func (fv *FieldValue) SetInteger(n int64) {
	fv.buf = [MessageLength]byte{}
	binary.LittleEndian.PutUint64(fv.buf[1:9], uint64(n))
	fv.setLength(8)
}

// SetText writes s's UTF-8 bytes beginning at byte 1 and records its
// length.
func (fv *FieldValue) SetText(s string) {
	fv.buf = [MessageLength]byte{}
	if len(s) > PayloadSize {
		s = truncateUTF8(s, PayloadSize)
	}
	copy(fv.buf[1:], s)
	fv.setLength(len(s))
}

// SetBytes writes b beginning at byte 1 and records its length.
func (fv *FieldValue) SetBytes(b []byte) {
	fv.buf = [MessageLength]byte{}
	if len(b) > PayloadSize {
		b = b[:PayloadSize]
	}
	copy(fv.buf[1:], b)
	fv.setLength(len(b))
}

// SetStatus writes code at byte 1, then up to 62 character-boundary
// truncated UTF-8 bytes of text, recording length 1+len(text).
func (fv *FieldValue) SetStatus(code byte, text string) {
	fv.buf = [MessageLength]byte{}
	fv.buf[1] = code
	if len(text) > PayloadSize-1 {
		text = truncateUTF8(text, PayloadSize-1)
	}
	copy(fv.buf[2:], text)
	fv.setLength(1 + len(text))
}

// SetOptions writes each index as a little-endian u16 beginning at byte 1
// and records the option count (not byte length) as the length.
func (fv *FieldValue) SetOptions(indices []uint16) {
	fv.buf = [MessageLength]byte{}
	off := 1
	n := 0
	for _, idx := range indices {
		if off+2 > MessageLength {
			break
		}
		binary.LittleEndian.PutUint16(fv.buf[off:off+2], idx)
		off += 2
		n++
	}
	fv.setLength(n)
}
