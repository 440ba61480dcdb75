// Package theme holds the shared light/dark flag and the styles derived
// from it.
package theme

import (
	"fmt"
	"strings"
)

// Mode is the window appearance.
type Mode int

const (
	Light Mode = iota
	Dark
)

func (m Mode) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// ParseMode accepts "light" or "dark", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return Light, fmt.Errorf("unknown theme %q", s)
	}
}

// State is the single writable theme flag. Subscribers are notified
// synchronously, in subscription order, before Toggle or Set returns.
type State struct {
	mode   Mode
	nextID int
	subs   []subscriber
}

type subscriber struct {
	id int
	fn func(Mode)
}

func NewState(m Mode) *State {
	return &State{mode: m}
}

func (s *State) Mode() Mode { return s.mode }

func (s *State) Toggle() Mode {
	s.mode = s.mode.Toggle()
	s.notify()
	return s.mode
}

// Set changes the mode and reports whether it changed. Setting the current
// mode notifies nobody.
func (s *State) Set(m Mode) bool {
	if m == s.mode {
		return false
	}
	s.mode = m
	s.notify()
	return true
}

// Subscribe registers fn and returns a func that removes it.
func (s *State) Subscribe(fn func(Mode)) func() {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *State) notify() {
	subs := append([]subscriber(nil), s.subs...)
	for _, sub := range subs {
		sub.fn(s.mode)
	}
}
