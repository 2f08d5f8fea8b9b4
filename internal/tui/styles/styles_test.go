package styles

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", Truncate("anything", 0))
	assert.Equal(t, "Dune", Truncate("Dune", 10))
	assert.Equal(t, "The Go...", Truncate("The Godfather", 9))
	assert.Equal(t, "Th", Truncate("The Godfather", 2))

	// wide runes take two columns each
	got := Truncate("千と千尋の神隠し", 7)
	assert.LessOrEqual(t, runewidth.StringWidth(got), 7)
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab   ", Pad("ab", 5))
	assert.Equal(t, "abcde", Pad("abcdefgh", 5))
	assert.Equal(t, "", Pad("abc", 0))
	assert.Equal(t, 6, runewidth.StringWidth(Pad("千と", 6)))
}
