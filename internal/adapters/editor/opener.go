// Package editor opens catalog files and artifacts in an external program.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"pyxidust/internal/ports"
)

// Opener implements ports.Opener
type Opener struct {
	configured string
	lookPath   func(string) (string, error)
}

var _ ports.Opener = (*Opener)(nil)

// NewOpener creates an opener. configured may hold a command with
// arguments, e.g. "code --wait"; when empty the environment decides.
func NewOpener(configured string) *Opener {
	return &Opener{configured: configured, lookPath: exec.LookPath}
}

// OpenFile opens a file and waits for the editor to exit
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file in the editor.
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	args := strings.Fields(o.findEditor())
	if len(args) == 0 {
		return nil, fmt.Errorf("no editor found: set editor in config or $EDITOR")
	}

	cmd := exec.Command(args[0], append(args[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findEditor returns the editor command line to use
func (o *Opener) findEditor() string {
	if o.configured != "" {
		return o.configured
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	// Catalogs are usually opened on Windows workstations
	editors := []string{"nvim", "vim", "vi", "nano", "code"}
	if runtime.GOOS == "windows" {
		editors = []string{"code", "notepad"}
	}
	for _, editor := range editors {
		if path, err := o.lookPath(editor); err == nil {
			return path
		}
	}

	return ""
}
