// Package source supplies what the timeline animates: the per-character
// units of a text, and the static backdrop a preview is painted over.
package source

import (
	"fmt"
	"unicode"

	"github.com/ivlev/sitemotion/internal/track"
)

// Glyph is one character unit of a split text.
type Glyph struct {
	ID    track.UnitID
	Char  rune
	Space bool
}

// Split breaks text into one glyph per character. IDs are prefix-NN in
// reading order. Whitespace is dropped unless preserveSpaces is set, in
// which case it is kept as a space glyph that still takes a slot.
func Split(prefix, text string, preserveSpaces bool) []Glyph {
	var out []Glyph
	i := 0
	for _, r := range text {
		space := unicode.IsSpace(r)
		if space && !preserveSpaces {
			continue
		}
		id := fmt.Sprintf("%s-%02d", prefix, i)
		if space {
			id += "-space"
		}
		out = append(out, Glyph{ID: track.UnitID(id), Char: r, Space: space})
		i++
	}
	return out
}

// SplitChars returns just the unit IDs of Split.
func SplitChars(prefix, text string, preserveSpaces bool) []track.UnitID {
	glyphs := Split(prefix, text, preserveSpaces)
	ids := make([]track.UnitID, len(glyphs))
	for i, g := range glyphs {
		ids[i] = g.ID
	}
	return ids
}
