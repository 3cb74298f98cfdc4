package controller

// Status lines shown to the user.
const (
	StatusLoading    = "Loading..."
	StatusLoaded     = "Overrides loaded"
	StatusLoadFailed = "Failed to load overrides"

	StatusSaved      = "Colors updated"
	StatusSaveFailed = "Failed to save colors"
	StatusReset      = "Colors reset"

	StatusStarting    = "Starting..."
	StatusStarted     = "OCR running"
	StatusStartFailed = "Could not start lighting"

	StatusStopping   = "Stopping..."
	StatusStopped    = "Stopped"
	StatusStopFailed = "Could not stop lighting"

	StatusDefiningArea     = "Defining capture area..."
	StatusAreaDefined      = "OCR capture area defined"
	StatusDefineAreaFailed = "Failed to define capture area"
)
