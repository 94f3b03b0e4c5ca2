// Package emoji provides symbol constants for CLI and kiosk output.
package emoji

// Symbol constants give every surface the same visual language.
const (
	// Success marks completed operations and present media.
	Success = "✓"

	// Error marks failed operations.
	Error = "✗"

	// Warning marks non-fatal issues such as large files.
	Warning = "!"

	// Info marks informational messages.
	Info = "i"

	// Optional marks skipped or absent optional media.
	Optional = "-"

	// Folder marks a navigable folder in listings.
	Folder = "▸"

	// Back marks the synthetic parent entry.
	Back = "↩"

	// Device marks a removable device.
	Device = "⏏"
)
