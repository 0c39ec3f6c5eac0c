package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a78bfa"))
	labelStyle = lipgloss.NewStyle().Faint(true)

	slotStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	hoverStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f172a")).Background(lipgloss.Color("#fbbf24"))
	focusStyle   = lipgloss.NewStyle().Underline(true).Bold(true)
	pieceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e2e8f0"))
	selectStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#22d3ee")).Bold(true)
	dragStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b")).Italic(true)
	recentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f472b6"))
	controlStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#818cf8"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#818cf8")).
			Padding(0, 1)
	closeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#818cf8"))
	closeFocusedStyle = closeStyle.Reverse(true)
)
