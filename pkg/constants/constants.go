// Package constants provides shared constants used throughout the lessonmap codebase.
// This includes storage layout names, file permissions, validation limits and
// polling intervals that should be consistent across the application.
package constants

import "time"

// Storage layout constants define the on-disk shape of the managed catalog
const (
	// DefaultDataFolder is the storage root used when none is configured
	DefaultDataFolder = "LessonsData"

	// MetadataFile is the JSON document holding every lesson record
	MetadataFile = "lessons_metadata.json"

	// AudioFolder holds managed audio copies named <id><ext>
	AudioFolder = "AudioFiles"

	// PdfFolder holds managed PDF copies named <id>_pdf<ext>
	PdfFolder = "PdfFiles"

	// PdfSuffix is appended to the lesson id for managed PDF names
	PdfSuffix = "_pdf"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Validation constants
const (
	// MinTitleLength is the minimum trimmed length of a lesson title
	MinTitleLength = 3

	// YearsBack is how many years before the current one are offered
	YearsBack = 5

	// YearsForward is how many years after the current one are offered
	YearsForward = 1

	// LargeAudioWarningBytes triggers a "large file" warning when exceeded
	LargeAudioWarningBytes = 500 * 1024 * 1024

	// LargePdfWarningBytes triggers a "large file" warning when exceeded
	LargePdfWarningBytes = 100 * 1024 * 1024
)

// Timing constants
const (
	// DevicePollInterval is how often removable-device presence is checked
	DevicePollInterval = 2 * time.Second

	// WatchDebounce coalesces bursts of file events on the metadata document
	WatchDebounce = 200 * time.Millisecond

	// ShutdownTimeout bounds graceful shutdown of the CLI
	ShutdownTimeout = 5 * time.Second
)

// Navigation constants
const (
	// PathSeparator joins path-model segments
	PathSeparator = "/"

	// BackEntryName is the display name of the synthetic parent entry
	BackEntryName = ".."

	// RootLabel is shown when the navigator is at the root
	RootLabel = "Root"
)

// Admin credential constants
const (
	// AdminUsername is the single hardcoded administrator account
	AdminUsername = "admin"

	// AdminPassword is the default administrator password, hashed with bcrypt at startup
	AdminPassword = "admin123"
)
