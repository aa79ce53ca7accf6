package constants

const (
	ActivityCheckIn          = "Check-in"
	ActivityStatusUpdate     = "Status Update"
	ActivityBlockerReported  = "Blocker Reported"
	ActivityScreenshotUpload = "Screenshot Upload"
	ActivityPhaseCompleted   = "Phase Completed"
	ActivityTaskSubmitted    = "Task Submitted"
)
