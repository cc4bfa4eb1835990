package tui

import (
	"os"
	"strconv"
	"strings"

	"desk-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// The TUI must stay readable on both light and dark terminal backgrounds, so colours are
// adaptive and faint is only used on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorSurfaceFg  lipgloss.TerminalColor = ac("235", "252")
	colorControlBg  lipgloss.TerminalColor = ac("252", "235")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorAccent     lipgloss.TerminalColor = ac("27", "62")
	colorError      lipgloss.TerminalColor = ac("160", "203")

	colorUrgent lipgloss.TerminalColor = ac("160", "203")
	colorNormal lipgloss.TerminalColor = ac("136", "221")
	colorLow    lipgloss.TerminalColor = ac("28", "114")
	colorFolder lipgloss.TerminalColor = ac("94", "180")
	colorPage   lipgloss.TerminalColor = ac("238", "250")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError).Bold(true)
}

// itemStyle is the base style for an item's box on the desk.
func itemStyle(p model.Placeable, selected bool) lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(colorSurfaceFg)
	switch v := p.(type) {
	case model.StickyNote:
		switch v.Priority {
		case model.PriorityUrgent:
			st = st.Foreground(colorUrgent)
		case model.PriorityLow:
			st = st.Foreground(colorLow)
		default:
			st = st.Foreground(colorNormal)
		}
	case model.DeskFolder, model.FileTray:
		st = st.Foreground(colorFolder)
	case model.TornPage:
		st = st.Foreground(colorPage)
	}
	if selected {
		st = st.Background(colorSelectedBg).Bold(true)
	}
	return st
}

func renderModalBox(width int, title, body string) string {
	w := modalBodyWidth(width)
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Width(w).
		Padding(0, 1).
		Render(title)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Width(w + 2)
	return box.Render(header + "\n\n" + body)
}

func modalBodyWidth(width int) int {
	w := width - 8
	if w > 72 {
		w = 72
	}
	if w < 24 {
		w = 24
	}
	return w
}

// applyColorProfilePreference honours NO_COLOR and otherwise follows the terminal. CLICOLOR
// is deliberately not consulted here.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && profile < termenv.ANSI256 {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection.
//
// Priority:
// 1) DESK_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("fg;bg", bg < 7 is dark)
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("DESK_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
