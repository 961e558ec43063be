package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortOrder_IsValid(t *testing.T) {
	for _, o := range ValidSortOrders {
		assert.True(t, o.IsValid(), "expected %q to be valid", o)
	}
	assert.False(t, SortOrder("sideways").IsValid())
}

func TestEntry_HasTagIgnoresCase(t *testing.T) {
	e := Entry{Tags: []string{"Vivid", "lucid"}}
	assert.True(t, e.HasTag("vivid"))
	assert.True(t, e.HasTag("LUCID"))
	assert.False(t, e.HasTag("scary"))
}

func TestEntry_CloneIsDeep(t *testing.T) {
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	orig := Entry{
		ID:          "e1",
		Fields:      map[string]string{"description": "flying"},
		Tags:        []string{"vivid"},
		FavoritedAt: &at,
	}
	cp := orig.Clone()
	cp.Fields["description"] = "falling"
	cp.Tags[0] = "scary"
	*cp.FavoritedAt = at.Add(time.Hour)

	assert.Equal(t, "flying", orig.Fields["description"])
	assert.Equal(t, "vivid", orig.Tags[0])
	assert.Equal(t, at, *orig.FavoritedAt)
}

func TestSnapshot_CloneIsDeep(t *testing.T) {
	s := &Snapshot{
		Version:    SnapshotVersion,
		Entries:    []Entry{{ID: "a", Tags: []string{"x"}}},
		CustomTags: []string{"custom"},
	}
	cp := s.Clone()
	cp.Entries[0].Tags[0] = "y"
	cp.CustomTags[0] = "other"

	assert.Equal(t, "x", s.Entries[0].Tags[0])
	assert.Equal(t, "custom", s.CustomTags[0])
}

func validVariant() Variant {
	return Variant{
		Name:            "dreams",
		PrimaryFields:   []string{"title", "description"},
		SecondaryFields: []string{"mood"},
		TagMode:         TagModeFree,
	}
}

func TestVariant_ValidatePasses(t *testing.T) {
	v := validVariant()
	require.NoError(t, v.Validate())
	assert.True(t, v.IsPrimary("title"))
	assert.False(t, v.IsPrimary("mood"))
	assert.True(t, v.HasField("mood"))
	assert.Equal(t, []string{"title", "description", "mood"}, v.Fields())
}

func TestVariant_ValidateRejects(t *testing.T) {
	v := validVariant()
	v.Name = " "
	assert.Error(t, v.Validate())

	v = validVariant()
	v.PrimaryFields = nil
	assert.ErrorContains(t, v.Validate(), "primary_fields")

	v = validVariant()
	v.TagMode = "many"
	assert.ErrorContains(t, v.Validate(), "tag_mode")

	v = validVariant()
	v.TagMode = TagModeSingle
	assert.ErrorContains(t, v.Validate(), "builtin_tags")

	v = validVariant()
	v.SecondaryFields = []string{"title"}
	assert.ErrorContains(t, v.Validate(), "duplicate field")
}
