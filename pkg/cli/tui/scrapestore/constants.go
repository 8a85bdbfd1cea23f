package scrapestore

// Step constants for the scrape-store state machine
const (
	StepURLInput = iota
	StepSupplier
	StepStreaming
	StepResult
)

// DefaultWidth is the default terminal width fallback
const DefaultWidth = 80

// ProgressBarWidth caps the rendered progress bar.
const ProgressBarWidth = 50
