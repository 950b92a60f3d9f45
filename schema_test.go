package mbconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildTestSchema() *Schema {
	sections := []EntryDesc{NewEntryDesc("General", 0)}
	props := []EntryDesc{
		func() EntryDesc {
			d := NewEntryDesc("Foo", uint8(ValueText))
			d.ReadOnly = true
			d.HasHelp = true
			d.Help = "help text"
			d.HasIcon = true
			d.Icon = "icon"
			return d
		}(),
		NewEntryDesc("Bar", uint8(ValueInteger)),
	}
	infos := []EntryDesc{NewEntryDesc("Status", uint8(ValueStatus))}
	actions := []EntryDesc{NewEntryDesc("Reboot", 0)}

	layout := []FieldRef2Section{
		{Section: 0, Ref: FieldRef{Kind: KindProp, Index: 0}},
		{Section: 0, Ref: FieldRef{Kind: KindInfo, Index: 0}},
		{Section: 0, Ref: FieldRef{Kind: KindProp, Index: 1}},
	}
	return NewSchema(sections, props, infos, actions, layout)
}

func TestSchemaCounts(t *testing.T) {
	s := buildTestSchema()
	assert.Equal(t, 1, s.SectionCount())
	assert.Equal(t, 2, s.PropCount())
	assert.Equal(t, 1, s.InfoCount())
	assert.Equal(t, 1, s.ActionCount())
}

func TestLayoutPreservesAuthoringOrder(t *testing.T) {
	s := buildTestSchema()
	refs := s.Layout(0)
	assert.Equal(t, []FieldRef{
		{Kind: KindProp, Index: 0},
		{Kind: KindInfo, Index: 0},
		{Kind: KindProp, Index: 1},
	}, refs)
}

func TestLayoutCapsAt31EntriesPerSection(t *testing.T) {
	var layout []FieldRef2Section
	for i := 0; i < 40; i++ {
		layout = append(layout, FieldRef2Section{Section: 0, Ref: FieldRef{Kind: KindProp, Index: uint8(i % 2)}})
	}
	s := NewSchema(
		[]EntryDesc{NewEntryDesc("s", 0)},
		[]EntryDesc{NewEntryDesc("a", uint8(ValueText)), NewEntryDesc("b", uint8(ValueText))},
		nil, nil, layout,
	)
	assert.Len(t, s.Layout(0), maxLayoutEntriesPerSection)
}
