// Package wrap breaks text into lines that fit a pixel width.
package wrap

import (
	"strings"

	"golang.org/x/image/font"
)

// Lines greedily packs the words of text into lines no wider than maxWidth
// when drawn with face. A word wider than maxWidth gets a line of its own.
func Lines(face font.Face, text string, maxWidth int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if Width(face, candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = w
	}
	return append(lines, current)
}

// Width is the advance of s in whole pixels.
func Width(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}
