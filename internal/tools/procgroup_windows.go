//go:build windows

package tools

import "os/exec"

// setProcessGroup is a no-op on Windows; exec.CommandContext's default
// kill of the direct child is the best available there.
func setProcessGroup(cmd *exec.Cmd) {}
