package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSlideConfig(t *testing.T) {
	t.Run("nil inputs", func(t *testing.T) {
		assert.Nil(t, MergeSlideConfig(nil, nil))

		base := &SlideConfig{Align: "left"}
		assert.Equal(t, "left", MergeSlideConfig(base, nil).Align)
		assert.Equal(t, "left", MergeSlideConfig(nil, base).Align)
	})

	t.Run("scalar overrides win", func(t *testing.T) {
		base := &SlideConfig{Align: "left", VAlign: "top", Color: "#000000"}
		override := &SlideConfig{Align: "center"}
		merged := MergeSlideConfig(base, override)
		assert.Equal(t, "center", merged.Align)
		assert.Equal(t, "top", merged.VAlign)
		assert.Equal(t, "#000000", merged.Color)
	})

	t.Run("background replaced atomically", func(t *testing.T) {
		base := &SlideConfig{Background: &SlideBackground{
			Type:  BackgroundTypeSolid,
			Color: "#111111",
		}}
		override := &SlideConfig{Background: &SlideBackground{
			Type:     BackgroundTypeGradient,
			Gradient: &Gradient{Angle: 90},
		}}
		merged := MergeSlideConfig(base, override)
		assert.Equal(t, BackgroundTypeGradient, merged.Background.Type)
		assert.Empty(t, merged.Background.Color)
	})

	t.Run("titlePrefix replaced wholesale", func(t *testing.T) {
		base := &SlideConfig{TitlePrefix: &TitlePrefixConfig{Text: "Ch. 1"}}
		override := &SlideConfig{TitlePrefix: &TitlePrefixConfig{Disabled: true}}
		merged := MergeSlideConfig(base, override)
		assert.True(t, merged.TitlePrefix.Disabled)
		assert.Empty(t, merged.TitlePrefix.Text)
	})

	t.Run("cover flag survives merge", func(t *testing.T) {
		off := false
		base := &SlideConfig{Cover: &off}
		merged := MergeSlideConfig(base, &SlideConfig{Align: "center"})
		require.NotNil(t, merged.Cover)
		assert.False(t, *merged.Cover)
	})

	t.Run("style leaves merge independently", func(t *testing.T) {
		size := 48
		base := &SlideConfig{Styles: &SlideStyles{
			H1: &TextStyle{Size: &size, Color: "#ffffff"},
		}}
		override := &SlideConfig{Styles: &SlideStyles{
			H1: &TextStyle{Color: "#ff0000"},
		}}
		merged := MergeSlideConfig(base, override)
		require.NotNil(t, merged.Styles.H1)
		assert.Equal(t, "#ff0000", merged.Styles.H1.Color)
		require.NotNil(t, merged.Styles.H1.Size)
		assert.Equal(t, 48, *merged.Styles.H1.Size)
	})
}

func TestApplyBaseColor(t *testing.T) {
	t.Run("nil styles with color builds buckets", func(t *testing.T) {
		var s *SlideStyles
		out := s.ApplyBaseColor("#aabbcc")
		require.NotNil(t, out)
		require.NotNil(t, out.Paragraphs)
		assert.Equal(t, "#aabbcc", out.Paragraphs.Color)
	})

	t.Run("explicit color kept", func(t *testing.T) {
		s := &SlideStyles{H1: &TextStyle{Color: "#ff0000"}}
		out := s.ApplyBaseColor("#ffffff")
		assert.Equal(t, "#ff0000", out.H1.Color)
		assert.Equal(t, "#ffffff", out.H2.Color)
	})

	t.Run("empty color is a no-op", func(t *testing.T) {
		var s *SlideStyles
		assert.Nil(t, s.ApplyBaseColor(""))
	})

	t.Run("input left unmodified", func(t *testing.T) {
		s := &SlideStyles{H1: &TextStyle{}}
		_ = s.ApplyBaseColor("#ffffff")
		assert.Empty(t, s.H1.Color)
	})
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidAlign("center"))
	assert.False(t, ValidAlign("diagonal"))
	assert.True(t, ValidVAlign("middle"))
	assert.False(t, ValidVAlign("center"))
	assert.True(t, ValidSlideNumberPosition("bottom-right"))
	assert.False(t, ValidSlideNumberPosition("middle"))
	assert.True(t, ValidTransitionStyle("smart"))
	assert.False(t, ValidTransitionStyle("spin"))
	assert.True(t, ValidTransitionCurve("ease-in-out"))
	assert.False(t, ValidTransitionCurve("zigzag"))
	assert.True(t, ValidCalloutKind("caution"))
	assert.False(t, ValidCalloutKind("danger"))
	assert.True(t, ValidComponentFit("contain"))
	assert.False(t, ValidComponentFit("stretch"))
	assert.True(t, ValidComponentAlign("top-left"))
	assert.False(t, ValidComponentAlign("upper"))
}
