// Package render holds width-aware text helpers for the panels. Track
// metadata comes from tags and may hold anything, so helpers that measure
// plain text sanitize it first.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// Sanitize drops control characters other than tab and invalid UTF-8,
// and turns non-breaking spaces into spaces.
func Sanitize(s string) string {
	if utf8.ValidString(s) && strings.IndexFunc(s, isUnsafe) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\u00a0':
			return ' '
		case r == utf8.RuneError, isUnsafe(r):
			return -1
		}
		return r
	}, s)
}

func isUnsafe(r rune) bool {
	return r == '\u00a0' || (r != '\t' && unicode.IsControl(r))
}

// Fit sanitizes plain text, then truncates or pads it to exactly width
// cells.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(Sanitize(s), width, ellipsis)
	return runewidth.FillRight(s, width)
}

// Pad fills plain text with spaces up to width cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Clip shortens an already styled string to width cells, keeping its escape
// sequences intact.
func Clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, ellipsis)
}

// Row puts left and right at the two ends of a width-cell line, with at
// least one space between them.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Separator is a horizontal rule of width cells.
func Separator(width int) string {
	return strings.Repeat("─", max(width, 0))
}

// Blank is width spaces.
func Blank(width int) string {
	return strings.Repeat(" ", max(width, 0))
}
