// Package variants holds the built-in journaling app definitions.
package variants

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ajitpratap0/daybook/internal/models"
)

// Default is the variant used when none is configured.
const Default = "dreams"

var presets = map[string]models.Variant{
	"dreams": {
		Name:            "dreams",
		Title:           "Dream Diary",
		PrimaryFields:   []string{"title", "description"},
		SecondaryFields: []string{"mood"},
		TagMode:         models.TagModeFree,
		BuiltinTags:     []string{"lucid", "nightmare", "recurring", "vivid"},
		NoFutureDates:   true,
	},
	"outfits": {
		Name:            "outfits",
		Title:           "Outfit Log",
		PrimaryFields:   []string{"description"},
		SecondaryFields: []string{"location", "weather", "comment"},
		TagMode:         models.TagModeSingle,
		BuiltinTags:     []string{"Spring", "Summer", "Autumn", "Winter"},
		NoFutureDates:   true,
	},
	"beauty": {
		Name:            "beauty",
		Title:           "Beauty Routine",
		PrimaryFields:   []string{"routine", "notes"},
		SecondaryFields: []string{"products"},
		TagMode:         models.TagModeSingle,
		BuiltinTags:     []string{"Skincare", "Haircare", "Makeup", "Nails", "Body"},
		NoFutureDates:   true,
		Streaks:         true,
	},
	"makeup": {
		Name:            "makeup",
		Title:           "Makeup Ideas",
		PrimaryFields:   []string{"title", "description"},
		SecondaryFields: []string{"occasion"},
		TagMode:         models.TagModeFree,
		BuiltinTags:     []string{"natural", "evening", "party", "bold"},
	},
	"gratitude": {
		Name:          "gratitude",
		Title:         "Gratitude Diary",
		PrimaryFields: []string{"first", "second", "third"},
		TagMode:       models.TagModeFree,
		OnePerDay:     true,
		NoFutureDates: true,
		Streaks:       true,
	},
	"tasks": {
		Name:            "tasks",
		Title:           "School Tasks",
		PrimaryFields:   []string{"title"},
		SecondaryFields: []string{"subject", "notes"},
		TagMode:         models.TagModeSingle,
		BuiltinTags:     []string{"Homework", "Exam", "Project", "Reading"},
	},
	"memories": {
		Name:            "memories",
		Title:           "Memory Calendar",
		PrimaryFields:   []string{"title", "story"},
		SecondaryFields: []string{"location", "people"},
		TagMode:         models.TagModeFree,
		BuiltinTags:     []string{"family", "friends", "travel"},
		NoFutureDates:   true,
		Streaks:         true,
	},
}

// Names returns the names of all built-in variants, sorted.
func Names() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a copy of the built-in variant with the given name.
func Lookup(name string) (models.Variant, bool) {
	v, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return models.Variant{}, false
	}
	return clone(v), true
}

// Resolve finds name among the custom definitions first, then the built-ins.
// A custom definition without a name inherits the map key.
func Resolve(name string, custom map[string]models.Variant) (models.Variant, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = Default
	}
	if v, ok := custom[key]; ok {
		v = clone(v)
		if v.Name == "" {
			v.Name = key
		}
		if v.TagMode == "" {
			v.TagMode = models.TagModeFree
		}
		if err := v.Validate(); err != nil {
			return models.Variant{}, fmt.Errorf("resolving variant: %w", err)
		}
		return v, nil
	}
	if v, ok := Lookup(key); ok {
		return v, nil
	}
	return models.Variant{}, fmt.Errorf("unknown variant %q: must be one of %s", name, strings.Join(Names(), "|"))
}

func clone(v models.Variant) models.Variant {
	v.PrimaryFields = append([]string(nil), v.PrimaryFields...)
	v.SecondaryFields = append([]string(nil), v.SecondaryFields...)
	v.BuiltinTags = append([]string(nil), v.BuiltinTags...)
	return v
}
