package tmux

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// runFn executes a tmux invocation. Tests replace it to capture arguments.
var runFn = run

func baseArgs(socketPath string) []string {
	if strings.TrimSpace(socketPath) == "" {
		return []string{}
	}
	return []string{"-S", socketPath}
}

func tmuxArgs(socketPath string, extra ...string) []string {
	args := baseArgs(socketPath)
	return append(args, extra...)
}

func tmuxCmd(socketPath string, extra ...string) *exec.Cmd {
	cmd := exec.Command("tmux", tmuxArgs(socketPath, extra...)...)
	if dir := socketDir(socketPath); dir != "" {
		cmd.Env = append(os.Environ(), "TMUX_TMPDIR="+dir)
	}
	return cmd
}

func run(socketPath string, extra ...string) error {
	cmd := tmuxCmd(socketPath, extra...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("tmux %s: %w: %s", extra[0], err, msg)
		}
		return fmt.Errorf("tmux %s: %w", extra[0], err)
	}
	return nil
}

func socketDir(socketPath string) string {
	trimmed := strings.TrimSpace(socketPath)
	if trimmed == "" {
		return ""
	}
	return filepath.Dir(trimmed)
}
