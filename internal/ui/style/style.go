// Package style provides shared UI styling primitives including colors and
// icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Blue   = lipgloss.Color("#2E6FDB")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Skip    = "-"
)

// Styles used by the deps listing.
var (
	PackageStyle = lipgloss.NewStyle().Bold(true)
	OKStyle      = lipgloss.NewStyle().Foreground(Green)
	FailStyle    = lipgloss.NewStyle().Foreground(Red)
	DimStyle     = lipgloss.NewStyle().Foreground(Slate)
)
