package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the gallery hides
	// media types and sizes.
	LayoutCompactWidth = 60

	// ProfileCardMaxWidth caps the width of the profile card and the about
	// text wrap.
	ProfileCardMaxWidth = 80
)

// Log display limits.
const (
	// LogTailLines is the number of log lines the overlay reads.
	LogTailLines = 400
)

// Timing constants.
const (
	// DefaultUIInterval is the default snapshot refresh interval.
	DefaultUIInterval = time.Second

	// StatusTimeout is how long a footer status message stays visible.
	StatusTimeout = 4 * time.Second
)
