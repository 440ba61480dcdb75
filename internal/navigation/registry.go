// Package navigation holds the settings sidebar: its declarative entry list
// and the currently selected item.
package navigation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Kind distinguishes selectable items from section headers.
type Kind int

const (
	KindItem Kind = iota
	KindHeader
)

// Entry is one sidebar row.
type Entry struct {
	Kind     Kind
	ID       string
	Label    string
	Sublabel string
}

// Item returns a selectable entry.
func Item(id, label, sublabel string) Entry {
	return Entry{Kind: KindItem, ID: id, Label: label, Sublabel: sublabel}
}

// Header returns a non-selectable section label.
func Header(label string) Entry {
	return Entry{Kind: KindHeader, Label: label}
}

func (e Entry) IsHeader() bool { return e.Kind == KindHeader }

var (
	ErrInvalidSelection = errors.New("invalid navigation selection")
	ErrInvalidConfig    = errors.New("invalid navigation config")
)

// SelectionError reports a select of an id that is not an item.
type SelectionError struct {
	ID         string
	Suggestion string
}

func (e *SelectionError) Error() string {
	msg := fmt.Sprintf("select %q: %s", e.ID, ErrInvalidSelection)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

func (e *SelectionError) Unwrap() error { return ErrInvalidSelection }

// maxSuggestDistance bounds how far a typo may be from a real id.
const maxSuggestDistance = 3

// Registry is the ordered entry list plus the active item id.
type Registry struct {
	entries []Entry
	items   map[string]int
	order   []string
	active  string
}

// NewRegistry validates entries: item ids must be non-empty and unique and
// at least one item must exist. The first item becomes active.
func NewRegistry(entries []Entry) (*Registry, error) {
	r := &Registry{
		entries: append([]Entry(nil), entries...),
		items:   make(map[string]int, len(entries)),
	}
	for i, e := range r.entries {
		if e.IsHeader() {
			continue
		}
		id := strings.TrimSpace(e.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrInvalidConfig, i)
		}
		if _, dup := r.items[id]; dup {
			return nil, fmt.Errorf("%w: duplicate item id %q", ErrInvalidConfig, id)
		}
		r.items[id] = i
		r.order = append(r.order, id)
	}
	if len(r.order) == 0 {
		return nil, fmt.Errorf("%w: no selectable items", ErrInvalidConfig)
	}
	r.active = r.order[0]
	return r, nil
}

// Select makes id active. Selecting the active id is a no-op. On error
// the active id is unchanged.
func (r *Registry) Select(id string) (string, error) {
	if _, ok := r.items[id]; !ok {
		return r.active, &SelectionError{ID: id, Suggestion: r.suggest(id)}
	}
	r.active = id
	return r.active, nil
}

func (r *Registry) ActiveID() string { return r.active }

// Active returns the active item's entry.
func (r *Registry) Active() Entry { return r.entries[r.items[r.active]] }

// Entries returns the configured entries unchanged, headers included.
func (r *Registry) Entries() []Entry { return append([]Entry(nil), r.entries...) }

// ItemIDs returns the selectable ids in display order.
func (r *Registry) ItemIDs() []string { return append([]string(nil), r.order...) }

func (r *Registry) Contains(id string) bool {
	_, ok := r.items[id]
	return ok
}

// Offset returns the item delta positions away from the active one,
// clamped to the ends of the list.
func (r *Registry) Offset(delta int) string {
	idx := 0
	for i, id := range r.order {
		if id == r.active {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(r.order) {
		idx = len(r.order) - 1
	}
	return r.order[idx]
}

func (r *Registry) suggest(id string) string {
	needle := strings.ToLower(strings.TrimSpace(id))
	if needle == "" {
		return ""
	}
	best, bestDist := "", maxSuggestDistance+1
	for _, candidate := range r.order {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(candidate))
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
