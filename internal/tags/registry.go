// Package tags maintains the set of known tag labels offered for filtering and
// labelling, independent of which tags are currently attached to entries.
package tags

import "strings"

// Registry holds built-in tags in app-defined order followed by custom tags in
// insertion order. Membership is case-insensitive.
type Registry struct {
	builtin []string
	custom  []string
	known   map[string]int // normalized name -> position in All()
}

// New creates a registry with the given built-in tags. Duplicate built-ins are dropped.
func New(builtin []string) *Registry {
	r := &Registry{known: make(map[string]int)}
	for _, b := range builtin {
		key := normalize(b)
		if key == "" {
			continue
		}
		if _, dup := r.known[key]; dup {
			continue
		}
		r.known[key] = len(r.builtin)
		r.builtin = append(r.builtin, strings.TrimSpace(b))
	}
	return r
}

// Restore replaces the custom tags with the given list, e.g. after loading a snapshot.
func (r *Registry) Restore(custom []string) {
	for _, c := range r.custom {
		delete(r.known, normalize(c))
	}
	r.custom = nil
	for _, c := range custom {
		r.Add(c)
	}
}

// Add normalizes name (trim, lowercase) and appends it as a custom tag.
// It returns false when the name is empty or already known.
func (r *Registry) Add(name string) bool {
	key := normalize(name)
	if key == "" {
		return false
	}
	if _, ok := r.known[key]; ok {
		return false
	}
	r.known[key] = len(r.builtin) + len(r.custom)
	r.custom = append(r.custom, key)
	return true
}

// Contains reports whether name is a known tag.
func (r *Registry) Contains(name string) bool {
	_, ok := r.known[normalize(name)]
	return ok
}

// Rank returns the position of name in All(), or -1 if unknown.
func (r *Registry) Rank(name string) int {
	if i, ok := r.known[normalize(name)]; ok {
		return i
	}
	return -1
}

// All returns built-in tags followed by custom tags.
func (r *Registry) All() []string {
	out := make([]string, 0, len(r.builtin)+len(r.custom))
	out = append(out, r.builtin...)
	return append(out, r.custom...)
}

// Builtin returns a copy of the built-in tags.
func (r *Registry) Builtin() []string {
	return append([]string(nil), r.builtin...)
}

// Custom returns a copy of the custom tags in insertion order.
func (r *Registry) Custom() []string {
	return append([]string(nil), r.custom...)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
