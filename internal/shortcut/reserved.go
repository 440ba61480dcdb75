package shortcut

import (
	"fmt"
	"sort"
)

// defaultReserved are combinations owned by the host system or by common
// application menus.
var defaultReserved = []string{
	"Cmd+Q",
	"Cmd+W",
	"Cmd+H",
	"Cmd+M",
	"Cmd+Tab",
	"Cmd+Space",
	"Cmd+C",
	"Cmd+V",
	"Cmd+X",
	"Cmd+Z",
	"Cmd+A",
	"Cmd+,",
	"Shift+Cmd+3",
	"Shift+Cmd+4",
	"Shift+Cmd+5",
	"Ctrl+Cmd+Q",
	"Option+Cmd+Esc",
	"Ctrl+Space",
	"Ctrl+C",
}

// DefaultReservedSpecs returns the built-in reserved combinations as text.
func DefaultReservedSpecs() []string {
	return append([]string(nil), defaultReserved...)
}

// ReservedSet is an immutable set of bindings that cannot be assigned.
type ReservedSet struct {
	set map[Binding]struct{}
}

func NewReservedSet(bindings ...Binding) ReservedSet {
	set := make(map[Binding]struct{}, len(bindings))
	for _, b := range bindings {
		set[b] = struct{}{}
	}
	return ReservedSet{set: set}
}

// ParseReservedSet parses every spec; the first invalid one fails the set.
func ParseReservedSet(specs []string) (ReservedSet, error) {
	bindings := make([]Binding, 0, len(specs))
	for i, spec := range specs {
		b, err := Parse(spec)
		if err != nil {
			return ReservedSet{}, fmt.Errorf("reserved[%d]: %w", i, err)
		}
		bindings = append(bindings, b)
	}
	return NewReservedSet(bindings...), nil
}

// DefaultReserved returns the built-in reserved set.
func DefaultReserved() ReservedSet {
	set, err := ParseReservedSet(defaultReserved)
	if err != nil {
		panic(err)
	}
	return set
}

func (r ReservedSet) Contains(b Binding) bool {
	_, ok := r.set[b]
	return ok
}

func (r ReservedSet) Len() int { return len(r.set) }

// Bindings lists the set sorted by canonical string.
func (r ReservedSet) Bindings() []Binding {
	out := make([]Binding, 0, len(r.set))
	for b := range r.set {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Suggestion is a recommended binding shown next to the recorder.
type Suggestion struct {
	Binding     Binding
	Description string
}

// Suggestions returns the recommended bindings in display order.
func Suggestions() []Suggestion {
	return []Suggestion{
		{Binding: MustParse("Cmd+Shift+P"), Description: "推奨設定 / Recommended default"},
		{Binding: MustParse("Cmd+Option+P"), Description: "代替設定 / Alternative option"},
		{Binding: MustParse("Ctrl+Shift+P"), Description: "Controlキーを使用 / Control-based option"},
	}
}
