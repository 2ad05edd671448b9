package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rectile/pkg/errors"
	"github.com/matzehuels/rectile/pkg/tiling"
	"github.com/matzehuels/rectile/pkg/tiling/grid"
	"github.com/matzehuels/rectile/pkg/tiling/preset"
	"github.com/matzehuels/rectile/pkg/tiling/propagate"
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var flags tilingFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Explore presets and grid sizes interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flags.apply(cmd.Flags(), c.Config.Tiling)
			m := NewPreviewModel(cfg, preset.Names(), flags.preset)
			_, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

// Preview styles
var (
	previewFieldStyle    = lipgloss.NewStyle().Foreground(colorLabel).Width(16)
	previewSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	previewErrorStyle    = lipgloss.NewStyle().Foreground(colorFail)

	mapDrawn    = lipgloss.NewStyle().Foreground(colorOK).Render("■")
	mapComplete = lipgloss.NewStyle().Foreground(colorAccent).Render("+")
	mapWidth    = lipgloss.NewStyle().Foreground(colorWarn).Render("w")
	mapHeight   = lipgloss.NewStyle().Foreground(colorWarn).Render("h")
	mapUnknown  = lipgloss.NewStyle().Foreground(colorMuted).Render("·")
)

// previewField is an adjustable setting.
type previewField int

const (
	fieldPreset previewField = iota
	fieldCX
	fieldGridWidth
	fieldMaxIterations
	fieldCount
)

func (f previewField) String() string {
	return [...]string{"preset", "cx", "grid width", "max iterations"}[f]
}

// Limits for the adjustable settings.
const (
	minPreviewCX       = 8
	maxPreviewCX       = 128
	minPreviewGrid     = 4
	maxPreviewIters    = 100000
	previewMapMaxCells = 48
)

// generatedMsg carries the outcome of one generation run.
type generatedMsg struct {
	result *tiling.Result
	err    error
}

// PreviewModel is the bubbletea model for the interactive preview. Every
// change of a setting regenerates the tiling.
type PreviewModel struct {
	Config  tiling.Config
	Presets []string
	Preset  int
	Cursor  previewField

	Result *tiling.Result
	Err    error

	// Step mode runs propagation one round per key press on its own grid.
	Step *stepState
}

// stepState is a propagation in progress.
type stepState struct {
	grid      *grid.Grid
	opts      propagate.Options
	rounds    int
	conflicts map[conflictID]struct{}
	settled   bool
}

// conflictID identifies a disagreement independently of the round that
// found it.
type conflictID struct {
	col, row int
	dim      grid.Dim
	rule     propagate.Pass
}

// newStepState seeds a fresh grid for cfg.
func newStepState(cfg tiling.Config, seeds []tiling.Seed) (*stepState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, err := cfg.ConflictPolicy()
	if err != nil {
		return nil, err
	}
	g := grid.New(cfg.CX)
	if err := g.Seed(seeds); err != nil {
		return nil, err
	}
	return &stepState{
		grid:      g,
		opts:      propagate.Options{HalfWidth: cfg.HalfWidth(), Conflicts: policy},
		conflicts: make(map[conflictID]struct{}),
	}, nil
}

// advance runs one round. A round without progress settles the grid.
// Conflicts found again in later rounds are counted once.
func (st *stepState) advance() {
	if st.settled {
		return
	}
	progress, found := propagate.Round(st.grid, st.opts)
	for _, c := range found {
		st.conflicts[conflictID{c.Col, c.Row, c.Dim, c.Rule}] = struct{}{}
	}
	if !progress {
		st.settled = true
		return
	}
	st.rounds++
}

// NewPreviewModel creates a preview starting at the named preset.
func NewPreviewModel(cfg tiling.Config, presets []string, current string) PreviewModel {
	m := PreviewModel{Config: cfg, Presets: presets}
	for i, name := range presets {
		if name == current {
			m.Preset = i
		}
	}
	return m
}

// generate runs the tiling for the current settings.
func (m PreviewModel) generate() tea.Cmd {
	cfg := m.Config
	name := m.Presets[m.Preset]
	return func() tea.Msg {
		p, err := preset.Lookup(name)
		if err != nil {
			return generatedMsg{err: err}
		}
		res, err := tiling.Generate(cfg, p.Seeds)
		return generatedMsg{result: res, err: err}
	}
}

func (m PreviewModel) Init() tea.Cmd {
	return m.generate()
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		m.Result, m.Err = msg.result, msg.err
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.Cursor = (m.Cursor + fieldCount - 1) % fieldCount
		case "down", "j", "tab":
			m.Cursor = (m.Cursor + 1) % fieldCount
		case "right", "l", "+":
			if m.adjust(1) {
				return m, m.generate()
			}
		case "left", "h", "-":
			if m.adjust(-1) {
				return m, m.generate()
			}
		case "r":
			m.Step = nil
			return m, m.generate()
		case "s", " ":
			m.step()
		}
	}
	return m, nil
}

// step starts step mode on a freshly seeded grid, or runs one more round.
func (m *PreviewModel) step() {
	if m.Step != nil {
		m.Step.advance()
		return
	}
	p, err := preset.Lookup(m.Presets[m.Preset])
	if err == nil {
		m.Step, err = newStepState(m.Config, p.Seeds)
	}
	if err != nil {
		m.Err = err
	}
}

// adjust moves the selected setting one step and reports whether it changed.
// cx moves in multiples of 4 and keeps the grid width below it; the grid
// width moves in even steps; the iteration cap doubles or halves.
func (m *PreviewModel) adjust(dir int) bool {
	before := m.Config
	beforePreset := m.Preset
	m.Step = nil

	switch m.Cursor {
	case fieldPreset:
		m.Preset = (m.Preset + dir + len(m.Presets)) % len(m.Presets)
	case fieldCX:
		m.Config.CX = clamp(m.Config.CX+4*dir, minPreviewCX, maxPreviewCX)
		m.Config.GridWidth = min(m.Config.GridWidth, m.Config.CX-2)
	case fieldGridWidth:
		m.Config.GridWidth = clamp(m.Config.GridWidth+2*dir, minPreviewGrid, m.Config.CX-2)
	case fieldMaxIterations:
		if dir > 0 {
			m.Config.MaxIterations = min(m.Config.MaxIterations*2, maxPreviewIters)
		} else {
			m.Config.MaxIterations = max(m.Config.MaxIterations/2, 1)
		}
	}
	return m.Config != before || m.Preset != beforePreset
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Rectile Preview"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ select  ←/→ adjust  s step  r regenerate  q quit"))
	b.WriteString("\n\n")

	values := []string{
		m.Presets[m.Preset],
		fmt.Sprint(m.Config.CX),
		fmt.Sprint(m.Config.GridWidth),
		fmt.Sprint(m.Config.MaxIterations),
	}
	for f := previewField(0); f < fieldCount; f++ {
		cursor := "  "
		value := StyleValue.Render(values[f])
		if f == m.Cursor {
			cursor = "▸ "
			value = previewSelectedStyle.Render("‹ " + values[f] + " ›")
		}
		b.WriteString(cursor + previewFieldStyle.Render(f.String()) + value + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.Err != nil:
		b.WriteString(previewErrorStyle.Render("✗ "+errors.UserMessage(m.Err)) + "\n")
	case m.Step != nil:
		b.WriteString(m.stepStats() + "\n\n")
		b.WriteString(knownMap(m.Step.grid, m.Config.HalfWidth()))
		b.WriteString("\n" + StyleDim.Render("+ known  w/h one side known  · unknown") + "\n")
	case m.Result == nil:
		b.WriteString(StyleDim.Render("generating...") + "\n")
	default:
		b.WriteString(m.stats() + "\n\n")
		b.WriteString(knownMap(m.Result.Grid, m.Config.HalfWidth()))
		b.WriteString("\n" + StyleDim.Render("■ drawn  + known  w/h one side known  · unknown") + "\n")
	}

	return b.String()
}

func (m PreviewModel) stats() string {
	r := m.Result
	converged := StyleSuccess.Render("converged")
	if !r.Converged {
		converged = StyleWarning.Render("iteration cap reached")
	}
	line := fmt.Sprintf("%s rectangles · %s iterations · %s",
		StyleNumber.Render(fmt.Sprint(len(r.Rectangles))),
		StyleNumber.Render(fmt.Sprint(r.Iterations)),
		converged)
	if n := len(r.Conflicts); n > 0 {
		line += " · " + StyleWarning.Render(fmt.Sprintf("%d conflicts", n))
	}
	return line
}

func (m PreviewModel) stepStats() string {
	st := m.Step
	state := StyleDim.Render("press s for the next round")
	if st.settled {
		state = StyleSuccess.Render("fixed point")
	}
	line := fmt.Sprintf("step mode · %s rounds · %s",
		StyleNumber.Render(fmt.Sprint(st.rounds)), state)
	if n := len(st.conflicts); n > 0 {
		line += " · " + StyleWarning.Render(fmt.Sprintf("%d conflicts", n))
	}
	return line
}

// knownMap draws the propagation square around the center, top row first.
// Large squares are cropped to the central previewMapMaxCells.
func knownMap(g *grid.Grid, halfWidth int) string {
	if g == nil {
		return ""
	}
	h := min(halfWidth, previewMapMaxCells/2)
	cx, cy := g.Center()

	var b strings.Builder
	for j := cy + h - 1; j >= cy-h; j-- {
		for i := cx - h; i < cx+h; i++ {
			b.WriteString(cellGlyph(g.At(i, j)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func cellGlyph(c *grid.Cell) string {
	switch {
	case c == nil:
		return " "
	case c.Drawn:
		return mapDrawn
	case c.Complete():
		return mapComplete
	case c.WidthKnown:
		return mapWidth
	case c.HeightKnown:
		return mapHeight
	}
	return mapUnknown
}
