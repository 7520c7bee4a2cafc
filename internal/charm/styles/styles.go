package styles

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	HeavilyEmphasized = lipgloss.
				NewStyle().
				Foreground(Colors.Blue).
				Bold(true)

	Emphasized = HeavilyEmphasized.Foreground(Colors.WhiteBlackAdaptive)

	Info    = Emphasized.Foreground(Colors.Blue)
	Warning = Emphasized.Foreground(Colors.Yellow)
	Error   = Emphasized.Foreground(Colors.Red)

	Dimmed       = lipgloss.NewStyle().Foreground(Colors.Grey)
	DimmedItalic = Dimmed.Italic(true)
	Help         = DimmedItalic

	Success = Emphasized.Foreground(Colors.Green)

	None = lipgloss.NewStyle()

	Colors = struct {
		Yellow, Red, Green, Grey, WhiteBlackAdaptive, Blue lipgloss.AdaptiveColor
	}{
		Yellow:             lipgloss.AdaptiveColor{Dark: "#E5C07B", Light: "#986801"},
		WhiteBlackAdaptive: lipgloss.AdaptiveColor{Dark: "#F3F0E3", Light: "#16150E"},
		Red:                lipgloss.AdaptiveColor{Dark: "#E06C75", Light: "#A31515"},
		Green:              lipgloss.AdaptiveColor{Dark: "#98C379", Light: "#50A14F"},
		Grey:               lipgloss.AdaptiveColor{Dark: "#8A887D", Light: "#68675F"},
		Blue:               lipgloss.AdaptiveColor{Dark: "#61AFEF", Light: "#0184BC"},
	}
)

func TerminalWidth() int {
	termWidth, _, _ := term.GetSize(int(os.Stdout.Fd()))
	return termWidth
}

func MakeBold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}

func RenderSuccessMessage(heading string, additionalLines ...string) string {
	s := Success.Render(heading)
	for _, line := range additionalLines {
		s += "\n" + Dimmed.Render(line)
	}

	return MakeBoxed(s, Colors.Green, lipgloss.Center)
}

func MakeBoxed(s string, borderColor lipgloss.AdaptiveColor, alignment lipgloss.Position) string {
	termWidth := TerminalWidth() - 2     // Leave room for padding (if the terminal is too small to fit, we need to wrap)
	stringWidth := lipgloss.Width(s) + 2 // Account for padding (on the other hand, if the terminal is wide enough, add back in the space so it doesn't needlessly wrap)
	w := min(termWidth, stringWidth)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		AlignHorizontal(alignment).
		Width(w).
		Render(s)
}
