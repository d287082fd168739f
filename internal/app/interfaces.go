// Package app provides CLI adapters that run a tip.Toolkit inside a
// bubbletea program for the duration of one command.
package app

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// Program is the part of *tea.Program a session drives.
type Program interface {
	// Run blocks until the program exits.
	Run() (tea.Model, error)
	// Quit asks a running program to exit.
	Quit()
}

// ProgramFactory builds the program that renders a session.
// This abstraction allows tests to drive the model without a terminal.
type ProgramFactory interface {
	New(model tea.Model) Program
}

// DefaultProgramFactory wraps tea.NewProgram with the standard options.
type DefaultProgramFactory struct {
	// Output is where the program draws. Stdout stays free for command
	// results such as prompt answers.
	Output io.Writer
}

// NewDefaultProgramFactory creates a factory drawing on stderr.
func NewDefaultProgramFactory() *DefaultProgramFactory {
	return &DefaultProgramFactory{Output: os.Stderr}
}

// New returns a program using the alternate screen and mouse cell motion.
func (f *DefaultProgramFactory) New(model tea.Model) Program {
	return tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithOutput(f.Output),
	)
}
