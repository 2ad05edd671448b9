package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/rectile/pkg/tiling"
)

// Palette (ANSI 256).
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorText   = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

// Styles shared by commands and the preview.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleNumber    = StyleHighlight
	StyleLink      = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorOK)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)
	StyleError     = lipgloss.NewStyle().Foreground(colorFail)

	styleLabel = lipgloss.NewStyle().Foreground(colorLabel)
	styleKey   = styleLabel.Width(12)
)

// statusKind selects the marker in front of a status line.
type statusKind int

const (
	statusOK statusKind = iota
	statusWarn
	statusNote
)

func (k statusKind) marker() string {
	switch k {
	case statusOK:
		return StyleSuccess.Render("✓")
	case statusWarn:
		return StyleWarning.Render("!")
	default:
		return styleLabel.Render("›")
	}
}

// status writes human-readable progress lines. Machine output (documents,
// DOT, tables) goes to the command's writer directly.
type status struct {
	w io.Writer
}

func (s status) line(k statusKind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if k == statusWarn {
		msg = StyleWarning.Render(msg)
	}
	fmt.Fprintln(s.w, k.marker()+" "+msg)
}

func (s status) success(format string, args ...any) { s.line(statusOK, format, args...) }
func (s status) warn(format string, args ...any)    { s.line(statusWarn, format, args...) }
func (s status) info(format string, args ...any)    { s.line(statusNote, format, args...) }

// detail prints an indented, muted line under the previous status.
func (s status) detail(format string, args ...any) {
	fmt.Fprintln(s.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file lists a written output path.
func (s status) file(path string) {
	fmt.Fprintln(s.w, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func (s status) keyValue(key, value string) {
	fmt.Fprintln(s.w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// summary prints a "33 rectangles · 2 files · cached" line. Zero counts are
// left out.
func (s status) summary(rects, files int, cached bool) {
	var parts []string
	if rects > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d rectangles", rects)))
	}
	if files > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d files", files)))
	}
	if cached {
		parts = append(parts, StyleSuccess.Render("cached"))
	} else {
		parts = append(parts, styleLabel.Render("fresh"))
	}
	fmt.Fprintln(s.w, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// hint suggests a follow-up command.
func (s status) hint(description, cmd string) {
	fmt.Fprintln(s.w, StyleDim.Render(description+":")+" "+StyleLink.UnsetUnderline().Render(cmd))
}

// tilingWarnings reports non-convergence and the first recorded conflict.
func (s status) tilingWarnings(res *tiling.Result) {
	if res == nil {
		return
	}
	if !res.Converged {
		s.warn("Propagation stopped after %d iterations without converging", res.Iterations)
	}
	if n := len(res.Conflicts); n > 0 {
		s.warn("%d conflicting derivations; first: %s", n, res.Conflicts[0])
	}
}
