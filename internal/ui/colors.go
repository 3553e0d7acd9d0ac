package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#1DB954", "#FF0000", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title  lipgloss.Style
	err    lipgloss.Style
	help   lipgloss.Style
	cursor lipgloss.Style
	marked lipgloss.Style
}

func NewPalette(t, e, h string) *Palette {
	return &Palette{
		title:  NewBold(t),
		err:    NewBold(e),
		help:   NewEm(h),
		cursor: lipgloss.NewStyle().Reverse(true),
		marked: NewBold(t),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
