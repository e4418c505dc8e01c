// Package reactions holds the ordered set of ratings a user can pick from.
package reactions

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ensigniasec/reactions/internal/validate"
)

// ImageRef points at an icon. The terminal renderer treats it as a glyph;
// other renderers may treat it as a path or URL.
type ImageRef string

// Reaction is one rateable position. Its index in a Set is its identity.
type Reaction struct {
	Label     string   `yaml:"label" validate:"required"`
	SmallIcon ImageRef `yaml:"small_icon" validate:"required"`
	LargeIcon ImageRef `yaml:"large_icon" validate:"required"`
}

// Set is an ordered, immutable list of reactions.
type Set struct {
	items []Reaction
}

// minReactions matches the smallest track the selector accepts.
const minReactions = 2

// ErrTooFew is returned when a set cannot back a selector.
var ErrTooFew = errors.New("at least two reactions are required")

// NewSet validates and copies items.
func NewSet(items []Reaction) (Set, error) {
	if len(items) < minReactions {
		return Set{}, fmt.Errorf("%w: got %d", ErrTooFew, len(items))
	}
	for i, r := range items {
		if err := validate.Struct(r); err != nil {
			return Set{}, fmt.Errorf("reaction %d: %w", i, err)
		}
	}
	cp := make([]Reaction, len(items))
	copy(cp, items)
	return Set{items: cp}, nil
}

// Default returns the five reactions of the movie rating screen.
func Default() Set {
	return Set{items: []Reaction{
		{Label: "Terrible", SmallIcon: "😟", LargeIcon: "😫"},
		{Label: "Bad", SmallIcon: "🙁", LargeIcon: "😢"},
		{Label: "Okay", SmallIcon: "😐", LargeIcon: "😶"},
		{Label: "Good", SmallIcon: "🙂", LargeIcon: "😊"},
		{Label: "Great", SmallIcon: "😮", LargeIcon: "🤩"},
	}}
}

func (s Set) Len() int { return len(s.items) }

// At returns the reaction at index i; it panics when i is out of range.
func (s Set) At(i int) Reaction { return s.items[i] }

// All returns a copy of the reactions in order.
func (s Set) All() []Reaction {
	cp := make([]Reaction, len(s.items))
	copy(cp, s.items)
	return cp
}

type fileFormat struct {
	Reactions []Reaction `yaml:"reactions"`
}

// Load reads a YAML file of the form:
//
//	reactions:
//	  - label: Terrible
//	    small_icon: "😟"
//	    large_icon: "😫"
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, err
	}
	return Parse(data)
}

// Parse decodes a reactions document.
func Parse(data []byte) (Set, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Set{}, fmt.Errorf("parse reactions: %w", err)
	}
	return NewSet(f.Reactions)
}
