package entities

import (
	"errors"
	"fmt"
	"time"
)

// Deck is the compiled intermediate representation of one markdown file:
// an ordered list of slides plus document metadata. It is what the build
// command serializes and what the serve loop pushes to clients.
type Deck struct {
	Title       string         `json:"title,omitempty"`
	Path        string         `json:"path,omitempty"`
	Slides      []SlideContent `json:"slides"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

// Validate checks the structural invariants of a compiled deck.
func (d *Deck) Validate() error {
	if len(d.Slides) == 0 {
		return errors.New("deck must have at least one slide")
	}
	for i := range d.Slides {
		if d.Slides[i].Index != i {
			return fmt.Errorf("slide %d has index %d", i, d.Slides[i].Index)
		}
		if err := d.Slides[i].Validate(); err != nil {
			return fmt.Errorf("slide %d: %w", i, err)
		}
	}
	return nil
}

// DeriveTitle returns the deck title: the plain text of the first heading
// found on the first slide, or empty when there is none.
func (d *Deck) DeriveTitle() string {
	if len(d.Slides) == 0 {
		return ""
	}
	return d.Slides[0].PlainTitle()
}
