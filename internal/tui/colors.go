package tui

// Color constants for the MindEase TUI theme
const (
	ColorBorder = "#2F4858"

	ColorPrimaryText   = "#E8F1F2"
	ColorSecondaryText = "#A3B8BF"
	ColorDisabledText  = "#5C6B73"
	ColorHelpText      = "240"

	// Accent Colors (calm teal theme)
	ColorAccentMain   = "#2DD4BF"
	ColorAccentBright = "#99F6E4"

	// State Colors
	ColorError   = "#F87171"
	ColorSuccess = "#4ADE80"
	ColorWarning = "#FBBF24"
)
