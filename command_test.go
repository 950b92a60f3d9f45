package mbconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(b ...byte) [MessageLength]byte {
	var f [MessageLength]byte
	copy(f[:], b)
	return f
}

func TestParseCommand_Meta(t *testing.T) {
	s := buildTestSchema()
	cmd, err := ParseCommand(s, frame('m'))
	require.NoError(t, err)
	assert.Equal(t, CmdMeta, cmd.Tag)
}

func TestParseCommand_UnknownTag(t *testing.T) {
	s := buildTestSchema()
	_, err := ParseCommand(s, frame('Z'))
	assert.Equal(t, ErrInvalidCommand, KindOf(err))
}

func TestParseCommand_ReadPropWithImplicitZeroIndex(t *testing.T) {
	// Frames are always a full 64 bytes, zero-padded; a frame with only a
	// tag byte still carries an explicit (zero) index argument rather than
	// truncating the read, so index 0 is used.
	s := buildTestSchema()
	cmd, err := ParseCommand(s, frame('r'))
	require.NoError(t, err)
	assert.EqualValues(t, 0, cmd.Index)
}

func TestParseCommand_ReadPropOutOfRange(t *testing.T) {
	s := buildTestSchema()
	_, err := ParseCommand(s, frame('r', 99))
	assert.Equal(t, ErrInvalidField, KindOf(err))
}

func TestParseCommand_ActionOutOfRange(t *testing.T) {
	s := buildTestSchema()
	_, err := ParseCommand(s, frame('a', 99))
	assert.Equal(t, ErrInvalidAction, KindOf(err))
}

func TestParseCommand_QueryUnknownEntryKind(t *testing.T) {
	s := buildTestSchema()
	_, err := ParseCommand(s, frame('q', 'z', 0, 'f'))
	assert.Equal(t, ErrInvalidEntry, KindOf(err))
}

func TestParseCommand_QueryLayoutOnNonSection(t *testing.T) {
	s := buildTestSchema()
	_, err := ParseCommand(s, frame('q', byte(KindProp), 0, byte(QueryLayout)))
	assert.Equal(t, ErrInvalidQuery, KindOf(err))
}

func TestParseCommand_QueryOptionReadsU16(t *testing.T) {
	s := buildTestSchema()
	cmd, err := ParseCommand(s, frame('q', byte(KindProp), 0, byte(QueryOption), 0x05, 0x00))
	require.NoError(t, err)
	assert.EqualValues(t, 5, cmd.OptionIndex)
}

func TestParseCommand_WriteBindsFieldValue(t *testing.T) {
	s := buildTestSchema()
	req := frame('w', 1, 0xE8, 0xFC, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)
	cmd, err := ParseCommand(s, req)
	require.NoError(t, err)
	require.NotNil(t, cmd.Value)
	assert.EqualValues(t, -792, cmd.Value.Integer())
}

func TestParseCommand_WriteWithZeroPaddedPayloadIsValid(t *testing.T) {
	// The frame is always 64 bytes; a write with no further explicit bytes
	// still carries a (zero-filled) payload, so this parses successfully
	// rather than failing with a missing-argument error.
	s := buildTestSchema()
	cmd, err := ParseCommand(s, frame('w', 1))
	require.NoError(t, err)
	assert.NotNil(t, cmd.Value)
}
