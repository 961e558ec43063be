package models

import (
	"fmt"
	"strings"
)

// TagMode selects how a variant attaches tags to entries.
type TagMode string

const (
	// TagModeSingle attaches at most one tag drawn from the variant's built-in set.
	TagModeSingle TagMode = "single"
	// TagModeFree attaches any number of user-extensible tags.
	TagModeFree TagMode = "free"
)

// ValidTagModes is the set of all valid tag modes.
var ValidTagModes = []TagMode{TagModeSingle, TagModeFree}

// IsValid returns true if the tag mode is recognized.
func (m TagMode) IsValid() bool {
	for _, v := range ValidTagModes {
		if m == v {
			return true
		}
	}
	return false
}

// Variant describes one journaling app: which text fields its entries carry,
// how they are tagged, and which per-app rules apply.
type Variant struct {
	Name            string   `json:"name" mapstructure:"name"`
	Title           string   `json:"title" mapstructure:"title"`
	PrimaryFields   []string `json:"primary_fields" mapstructure:"primary_fields"`
	SecondaryFields []string `json:"secondary_fields,omitempty" mapstructure:"secondary_fields"`
	TagMode         TagMode  `json:"tag_mode" mapstructure:"tag_mode"`
	BuiltinTags     []string `json:"builtin_tags,omitempty" mapstructure:"builtin_tags"`
	OnePerDay       bool     `json:"one_per_day" mapstructure:"one_per_day"`
	NoFutureDates   bool     `json:"no_future_dates" mapstructure:"no_future_dates"`
	Streaks         bool     `json:"streaks" mapstructure:"streaks"`
}

// IsPrimary reports whether name is one of the variant's primary text fields.
func (v *Variant) IsPrimary(name string) bool {
	for _, f := range v.PrimaryFields {
		if f == name {
			return true
		}
	}
	return false
}

// HasField reports whether name is a primary or secondary field of the variant.
func (v *Variant) HasField(name string) bool {
	if v.IsPrimary(name) {
		return true
	}
	for _, f := range v.SecondaryFields {
		if f == name {
			return true
		}
	}
	return false
}

// Fields returns primary fields followed by secondary fields.
func (v *Variant) Fields() []string {
	out := make([]string, 0, len(v.PrimaryFields)+len(v.SecondaryFields))
	out = append(out, v.PrimaryFields...)
	return append(out, v.SecondaryFields...)
}

// Validate checks that the variant definition is usable.
func (v *Variant) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("variant name must not be empty")
	}
	if len(v.PrimaryFields) == 0 {
		return fmt.Errorf("variant %q: primary_fields must not be empty", v.Name)
	}
	if !v.TagMode.IsValid() {
		return fmt.Errorf("variant %q: invalid tag_mode %q", v.Name, v.TagMode)
	}
	if v.TagMode == TagModeSingle && len(v.BuiltinTags) == 0 {
		return fmt.Errorf("variant %q: tag_mode single requires builtin_tags", v.Name)
	}
	seen := make(map[string]bool)
	for _, f := range v.Fields() {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("variant %q: field names must not be empty", v.Name)
		}
		if seen[f] {
			return fmt.Errorf("variant %q: duplicate field %q", v.Name, f)
		}
		seen[f] = true
	}
	return nil
}
