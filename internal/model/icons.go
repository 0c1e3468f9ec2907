package model

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconPinned   = "⊙" // Pinned formula
	IconOutdated = "↑" // Upgrade available
	IconCask     = "◇" // Cask (application)
	IconOK       = " " // Up to date (no icon to reduce noise)
	IconFailed   = "✗" // Operation failed
	IconDone     = "✓" // Operation succeeded
)
