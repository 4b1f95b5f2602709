package app

import "github.com/pandalog/pandalog/internal/cmd"

// Run executes the pandalog command.
func Run() error {
	return cmd.Execute()
}

// RunAuth executes the pandalog-auth command.
func RunAuth() error {
	return cmd.ExecuteAuth()
}

// HandleError prints the error and returns the exit code for it.
func HandleError(err error) cmd.ExitCode {
	return cmd.HandleError(err)
}
