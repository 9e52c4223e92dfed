package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headingSlide(index int, title string) SlideContent {
	return SlideContent{
		Index: index,
		Blocks: []Block{{
			Type: BlockTypeHeading,
			Heading: &HeadingBlock{
				Level: 1,
				Spans: []TextSpan{{Text: title}},
			},
		}},
	}
}

func TestDeckValidate(t *testing.T) {
	t.Run("valid deck", func(t *testing.T) {
		deck := &Deck{Slides: []SlideContent{headingSlide(0, "A"), headingSlide(1, "B")}}
		assert.NoError(t, deck.Validate())
	})

	t.Run("empty deck", func(t *testing.T) {
		deck := &Deck{}
		assert.Error(t, deck.Validate())
	})

	t.Run("misnumbered slides", func(t *testing.T) {
		deck := &Deck{Slides: []SlideContent{headingSlide(0, "A"), headingSlide(5, "B")}}
		err := deck.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "index")
	})
}

func TestDeckDeriveTitle(t *testing.T) {
	t.Run("first heading wins", func(t *testing.T) {
		deck := &Deck{Slides: []SlideContent{headingSlide(0, "Welcome"), headingSlide(1, "Later")}}
		assert.Equal(t, "Welcome", deck.DeriveTitle())
	})

	t.Run("no slides", func(t *testing.T) {
		assert.Empty(t, (&Deck{}).DeriveTitle())
	})

	t.Run("no heading on first slide", func(t *testing.T) {
		deck := &Deck{Slides: []SlideContent{{Index: 0, Blocks: []Block{}}}}
		assert.Empty(t, deck.DeriveTitle())
	})
}
