package exitcodes

// Exit codes of the scanlaunch CLI.
const (
	Success       = 0 // Command succeeded
	Usage         = 1 // Bad flags or arguments
	InvalidConfig = 2 // Configuration file invalid or missing
	Unsupported   = 3 // Command not supported on this platform
	SpawnFailed   = 4 // OS refused to create the process
)
