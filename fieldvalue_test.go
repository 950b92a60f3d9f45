package mbconf

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func textDesc(maxLen int32) *EntryDesc {
	d := NewEntryDesc("name", uint8(ValueText))
	d.Constraint = RangeConstraint(0, maxLen)
	return &d
}

func integerDesc(lo, hi int32) *EntryDesc {
	d := NewEntryDesc("n", uint8(ValueInteger))
	d.Constraint = RangeConstraint(lo, hi)
	return &d
}

func secretDesc() *EntryDesc {
	d := NewEntryDesc("pw", uint8(ValueSecret))
	return &d
}

func optionsDesc(count uint32, maxSuggested uint16) *EntryDesc {
	d := NewEntryDesc("opt", uint8(ValueOptions))
	d.Constraint = ValuesConstraint(count, 0, maxSuggested)
	d.Options = StaticOptions{"a", "b", "c"}
	return &d
}

func TestWriteProp_IntegerRangeClamp(t *testing.T) {
	desc := integerDesc(-1500, 1500)

	fv, err := ParseFromMessage(desc, leInt64(-792))
	require.NoError(t, err)
	assert.EqualValues(t, -792, fv.Integer())

	fv2, err := ParseFromMessage(desc, leInt64(8192))
	require.NoError(t, err)
	assert.EqualValues(t, 1500, fv2.Integer())
}

func leInt64(n int64) []byte {
	fv := &FieldValue{desc: integerDesc(-1<<31, 1<<31-1)}
	fv.SetInteger(n)
	return fv.payload()
}

func TestSecretMasksOnMessageEmit(t *testing.T) {
	desc := secretDesc()
	fv, err := ParseFromMessage(desc, []byte("hunter2"))
	require.NoError(t, err)
	msg := fv.IntoMessageBytes()
	assert.Equal(t, byte(1), msg[0])
	for i := 1; i <= 7; i++ {
		assert.Equal(t, byte('*'), msg[i])
	}
}

func TestOptionsFilteringPreservesOrder(t *testing.T) {
	desc := optionsDesc(3, 2)
	fv := &FieldValue{desc: desc}
	fv.SetOptions([]uint16{5, 0, 9, 1, 2})
	fv.Clamp()
	assert.Equal(t, []uint16{0, 1}, fv.Options())
}

func TestEmptyBlobMaterializesDefault(t *testing.T) {
	desc := textDesc(10)
	desc.HasDefault = true
	desc.Default = DefaultValue{Kind: DefaultText, Text: "hi"}

	var blob [MessageLength]byte
	fv, err := LoadFromStore(desc, blob)
	require.NoError(t, err)
	assert.Equal(t, "hi", fv.Text())

	var ffBlob [MessageLength]byte
	for i := range ffBlob {
		ffBlob[i] = 0xFF
	}
	fv2, err := LoadFromStore(desc, ffBlob)
	require.NoError(t, err)
	assert.Equal(t, "hi", fv2.Text())
}

func TestClampIsIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.Int32Range(-1000, 0).Draw(rt, "lo")
		hi := rapid.Int32Range(1, 1000).Draw(rt, "hi")
		n := rapid.Int64Range(-1_000_000, 1_000_000).Draw(rt, "n")

		desc := integerDesc(lo, hi)
		fv := &FieldValue{desc: desc}
		fv.SetInteger(n)
		fv.Clamp()
		once := fv.Integer()
		fv.Clamp()
		twice := fv.Integer()
		assert.Equal(rt, once, twice)
		assert.GreaterOrEqual(rt, once, int64(lo))
		assert.LessOrEqual(rt, once, int64(hi))
	})
}

func TestSetTextNeverSplitsCodepoint(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.String().Draw(rt, "s")
		desc := textDesc(int32(rapid.IntRange(0, 50).Draw(rt, "max")))
		fv := &FieldValue{desc: desc}
		fv.SetText(s)
		fv.Clamp()
		got := fv.Text()
		assert.True(rt, utf8.ValidString(got))
	})
}

func TestRoundTripStoreForm(t *testing.T) {
	desc := integerDesc(-100, 100)
	fv := &FieldValue{desc: desc}
	fv.SetInteger(42)
	stored := fv.IntoStoreBytes()

	fv2, err := LoadFromStore(desc, stored)
	require.NoError(t, err)
	assert.EqualValues(t, 42, fv2.Integer())
}
