package selection

import "sort"

// Set is an unordered set of order IDs.
type Set map[string]struct{}

// Flags drive the master checkbox of a visible list.
type Flags struct {
	AllSelected  bool `json:"allSelected"`
	SomeSelected bool `json:"someSelected"`
}

// NewSet builds a set from ids.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Len() int { return len(s) }

// Toggle flips membership of id.
func (s Set) Toggle(id string) {
	if id == "" {
		return
	}
	if s.Has(id) {
		delete(s, id)
		return
	}
	s[id] = struct{}{}
}

// SelectAllVisible selects every visible id, or deselects them all when all
// are already selected. Ids outside visible are untouched.
func (s Set) SelectAllVisible(visible []string) {
	if len(visible) == 0 {
		return
	}
	if s.Flags(visible).AllSelected {
		for _, id := range visible {
			delete(s, id)
		}
		return
	}
	for _, id := range visible {
		if id != "" {
			s[id] = struct{}{}
		}
	}
}

// Flags reports the tri-state of the visible list. Empty visible yields both false.
func (s Set) Flags(visible []string) Flags {
	var selected, total int
	seen := make(map[string]struct{}, len(visible))
	for _, id := range visible {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		total++
		if s.Has(id) {
			selected++
		}
	}
	if total == 0 {
		return Flags{}
	}
	return Flags{
		AllSelected:  selected == total,
		SomeSelected: selected > 0 && selected < total,
	}
}

// Prune drops ids that are not visible.
func (s Set) Prune(visible []string) {
	keep := NewSet(visible...)
	for id := range s {
		if !keep.Has(id) {
			delete(s, id)
		}
	}
}

// Hidden returns selected ids that are not visible, sorted.
func (s Set) Hidden(visible []string) []string {
	vis := NewSet(visible...)
	var out []string
	for id := range s {
		if !vis.Has(id) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// IDs returns the members sorted.
func (s Set) IDs() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s Set) Clone() Set {
	c := make(Set, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}
