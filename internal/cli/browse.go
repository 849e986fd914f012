package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/posterforge/pkg/palette"
	"github.com/matzehuels/posterforge/pkg/poster"
)

var (
	browseSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	browseDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// maxBrowseCount bounds the palette size in the browser.
const maxBrowseCount = 16

// =============================================================================
// PaletteBrowser - Interactive palette exploration
// =============================================================================

// PaletteBrowser is the bubbletea model for flipping through palette modes
// and seeds. The custom mode is skipped since it needs a colour table.
type PaletteBrowser struct {
	Modes   []palette.Mode
	Cursor  int
	Count   int
	BaseHue float64
	Seed    uint64

	// Chosen is set when the user confirms with enter.
	Chosen palette.Palette

	current palette.Palette
	err     error
}

// NewPaletteBrowser creates a browser starting at mode.
func NewPaletteBrowser(mode palette.Mode, count int, baseHue float64, seed uint64) PaletteBrowser {
	var modes []palette.Mode
	cursor := 0
	for _, m := range palette.Modes() {
		if m == palette.Custom {
			continue
		}
		if m == mode {
			cursor = len(modes)
		}
		modes = append(modes, m)
	}
	b := PaletteBrowser{Modes: modes, Cursor: cursor, Count: count, BaseHue: baseHue, Seed: seed}
	b.regenerate()
	return b
}

// Mode returns the selected mode.
func (m PaletteBrowser) Mode() palette.Mode {
	return m.Modes[m.Cursor]
}

func (m *PaletteBrowser) regenerate() {
	m.current, m.err = palette.Generate(palette.Spec{
		Mode:    m.Mode(),
		Count:   m.Count,
		BaseHue: m.BaseHue,
	}, poster.NewRand(m.Seed))
}

func (m PaletteBrowser) Init() tea.Cmd {
	return nil
}

func (m PaletteBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "enter":
		m.Chosen = m.current
		return m, tea.Quit
	case "left", "h":
		m.Cursor = (m.Cursor + len(m.Modes) - 1) % len(m.Modes)
	case "right", "l", "tab":
		m.Cursor = (m.Cursor + 1) % len(m.Modes)
	case "r", " ":
		m.Seed++
	case "R":
		if m.Seed > 0 {
			m.Seed--
		}
	case "+", "=":
		m.Count = min(m.Count+1, maxBrowseCount)
	case "-":
		m.Count = max(m.Count-1, 1)
	case "]":
		m.BaseHue = wrapHue(m.BaseHue + 0.05)
	case "[":
		m.BaseHue = wrapHue(m.BaseHue - 0.05)
	default:
		return m, nil
	}
	m.regenerate()
	return m, nil
}

// wrapHue keeps a hue in [0,1).
func wrapHue(h float64) float64 {
	h -= float64(int(h))
	if h < 0 {
		h++
	}
	if h >= 1 {
		h = 0
	}
	return h
}

func (m PaletteBrowser) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Palette Browser"))
	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render("←/→ mode  r/R seed  +/- count  [/] hue  ⏎ select  q quit"))
	b.WriteString("\n\n")

	names := make([]string, len(m.Modes))
	for i, mode := range m.Modes {
		if i == m.Cursor {
			names[i] = browseSelectedStyle.Render("▸ " + string(mode))
		} else {
			names[i] = browseDimStyle.Render("  " + string(mode))
		}
	}
	b.WriteString(strings.Join(names, " "))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(StyleWarning.Render(m.err.Error()))
	} else {
		b.WriteString(swatchRow(m.current.Hex()))
	}
	b.WriteString("\n\n")

	status := fmt.Sprintf("seed %d · %d colours", m.Seed, m.Count)
	if m.Mode() == palette.Mono {
		status += fmt.Sprintf(" · hue %.2f", m.BaseHue)
	}
	b.WriteString(browseDimStyle.Render(status))
	return b.String()
}
