package host

import (
	"testing"

	"github.com/piksel/mbconf"
	"github.com/stretchr/testify/assert"
)

func TestDecodeRawDescriptor_MatchesEncodeDescriptor(t *testing.T) {
	desc := mbconf.NewEntryDesc("Timeout", uint8(mbconf.ValueInteger))
	desc.Constraint = mbconf.RangeConstraint(-1500, 1500)
	desc.HasHelp = true

	frame := desc.EncodeDescriptor()
	resp := frame.AsBytes()

	raw := decodeRawDescriptor(resp)
	assert.Equal(t, "Timeout", raw.Name)
	assert.True(t, raw.Flags.HasHelp())
	assert.Equal(t, uint8(mbconf.ValueInteger), raw.Variant)

	start, end := raw.AsRange()
	assert.Equal(t, int32(-1500), start)
	assert.Equal(t, int32(1500), end)
}

func TestRawDescriptor_AsValues(t *testing.T) {
	desc := mbconf.NewEntryDesc("Mode", uint8(mbconf.ValueOptions))
	desc.Constraint = mbconf.ValuesConstraint(3, 0, 1)
	desc.HasDefault = true
	desc.Default = mbconf.DefaultValue{Kind: mbconf.DefaultOptions, Options: []uint16{0}}

	resp := desc.EncodeDescriptor().AsBytes()
	raw := decodeRawDescriptor(resp)

	count, min, maxOrSuggested := raw.AsValues()
	assert.Equal(t, uint32(3), count)
	assert.Equal(t, uint16(0), min)
	assert.Equal(t, uint16(1), maxOrSuggested)
}

func TestSectionView_FieldViewsJoinsAgainstTables(t *testing.T) {
	props := []RawDescriptor{{Name: "Foo"}, {Name: "Bar"}}
	infos := []RawDescriptor{{Name: "Status"}}

	sv := SectionView{
		Index: 0,
		Layout: []mbconf.FieldRef{
			{Kind: mbconf.KindProp, Index: 1},
			{Kind: mbconf.KindInfo, Index: 0},
		},
	}

	views := sv.FieldViews(props, infos)
	assert.Len(t, views, 2)
	assert.Equal(t, "Bar", views[0].Desc.Name)
	assert.Equal(t, "Status", views[1].Desc.Name)
}

func TestSchema_SectionOutOfRangeReturnsNil(t *testing.T) {
	s := &Schema{}
	assert.Nil(t, s.Section(0))
	assert.Nil(t, s.Section(-1))
}
