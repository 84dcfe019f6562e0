package ports

import "os/exec"

// Opener hands the catalog log or an artifact to an external program.
// OpenFile waits for the program to exit; Command only builds the process,
// for callers such as the TUI that suspend themselves while it runs.
type Opener interface {
	OpenFile(path string) error
	Command(path string) (*exec.Cmd, error)
}
