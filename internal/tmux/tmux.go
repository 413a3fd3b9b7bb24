package tmux

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// SetBuffer loads data into a paste buffer. An empty name lets tmux pick the
// next automatic buffer.
func SetBuffer(socketPath, name, data string) error {
	args := []string{"set-buffer"}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		args = append(args, "-b", trimmed)
	}
	args = append(args, "--", data)
	return runFn(socketPath, args...)
}

// SendKeys types text literally into the target pane.
func SendKeys(socketPath, target, text string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return fmt.Errorf("send-keys target required")
	}
	return runFn(socketPath, "send-keys", "-t", target, "-l", "--", text)
}

// ResolveSocketPath picks the tmux server socket: the explicit value first,
// then the server the popup was launched from, then tmux's default location.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

// CurrentPane returns the pane the popup was opened from, if any.
func CurrentPane() string {
	return strings.TrimSpace(os.Getenv("TMUX_PANE"))
}
