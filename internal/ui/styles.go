package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWorking lipgloss.Style
	Index         lipgloss.Style
	FileName      lipgloss.Style
	Summary       lipgloss.Style
	Help          lipgloss.Style
	InputBox      lipgloss.Style
	Main          lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusWorking: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Index:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(6),
		FileName:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Summary:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Help:          lipgloss.NewStyle().Faint(true),
		InputBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("241")),
		Main: lipgloss.NewStyle().Padding(1, 2),
	}
}
