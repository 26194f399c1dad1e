package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// Spotify green, with the usual status colors.
var styles = NewPalette("#1DB954", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
	label lipgloss.Style
}

// NewPalette builds a palette from title, success, error, warning and help colors.
func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
		label: NewStyle(h),
	}
}

// Plain returns a palette that renders text unchanged.
func Plain() *Palette {
	s := lipgloss.NewStyle()
	return &Palette{title: s, ok: s, err: s, warn: s, help: s, label: s}
}

// Default returns the colored palette.
func Default() *Palette {
	return styles
}

// For picks [Default] when w is a terminal and [Plain] otherwise.
func For(w io.Writer) *Palette {
	if f, ok := w.(interface{ Fd() uintptr }); ok && term.IsTerminal(f.Fd()) {
		return Default()
	}
	return Plain()
}

func (p *Palette) Title(s string) string { return p.title.Render(s) }
func (p *Palette) Warn(s string) string  { return p.warn.Render("⚠ " + s) }
func (p *Palette) Help(s string) string  { return p.help.Render(s) }

// OK marks s as a completed step.
func (p *Palette) OK(s string) string { return p.ok.Render("✓ " + s) }

// Err marks s as a failure.
func (p *Palette) Err(s string) string { return p.err.Render("✗ " + s) }

// Field renders a "label: value" line with the label dimmed.
func (p *Palette) Field(label string, value any) string {
	return fmt.Sprintf("%s %v", p.label.Render(label+":"), value)
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
