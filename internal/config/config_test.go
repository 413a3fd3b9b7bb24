package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

// loadArgs parses args on a fresh flag set the way the root command does and
// layers the result over environ.
func loadArgs(args, environ []string) (Config, error) {
	fs := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return FromFlags(fs, environ)
}

func TestFromFlagsDefaults(t *testing.T) {
	cfg, err := loadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Length != 4 {
		t.Fatalf("expected default length 4, got %d", cfg.App.Length)
	}
	if cfg.App.Alphabet != "digits" || cfg.App.Deliver != "stdout" {
		t.Fatalf("unexpected defaults %#v", cfg.App)
	}
	if cfg.App.ShowFooter || cfg.Logging.Trace {
		t.Fatalf("expected footer and trace off by default")
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}
}

func TestFromFlagsParsedFlags(t *testing.T) {
	args := []string{"-n", "6", "--alphabet", "hex", "--deliver", "buffer", "--buffer-name", "otp", "--footer", "--trace", "--log-file", "otp.log"}
	cfg, err := loadArgs(args, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Length != 6 || cfg.App.Alphabet != "hex" || cfg.App.Deliver != "buffer" || cfg.App.BufferName != "otp" {
		t.Fatalf("unexpected app config %#v", cfg.App)
	}
	if !cfg.App.ShowFooter || !cfg.Logging.Trace || cfg.Logging.FilePath != "otp.log" {
		t.Fatalf("unexpected logging/footer %#v %#v", cfg.App, cfg.Logging)
	}
	if cfg.Flags["length"] != "6" || cfg.Flags["buffer-name"] != "otp" {
		t.Fatalf("unexpected flags map %#v", cfg.Flags)
	}
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	env := []string{"TMUX_POPUP_OTP_LENGTH=8", "TMUX_POPUP_OTP_BUFFER_NAME=otp-env", "TMUX_POPUP_OTP_FOOTER=true"}
	cfg, err := loadArgs(nil, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Length != 8 || cfg.App.BufferName != "otp-env" || !cfg.App.ShowFooter {
		t.Fatalf("expected environment values, got %#v", cfg.App)
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	cfg, err := loadArgs([]string{"--length", "5"}, []string{"TMUX_POPUP_OTP_LENGTH=8"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Length != 5 {
		t.Fatalf("expected flag to win, got %d", cfg.App.Length)
	}
}

func TestConfigFileLayering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "otp.yaml")
	content := "length: 6\ntitle: Bank login\nalphabet: alnum\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadArgs([]string{"--config", path}, []string{"TMUX_POPUP_OTP_ALPHABET=hex"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.File != path {
		t.Fatalf("expected config file %q, got %q", path, cfg.File)
	}
	if cfg.App.Length != 6 || cfg.App.Title != "Bank login" {
		t.Fatalf("expected file values, got %#v", cfg.App)
	}
	if cfg.App.Alphabet != "hex" {
		t.Fatalf("expected environment to override file, got %q", cfg.App.Alphabet)
	}

	cfg, err = loadArgs(nil, []string{"TMUX_POPUP_OTP_CONFIG=" + path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Length != 6 {
		t.Fatalf("expected config file from environment, got %d", cfg.App.Length)
	}
}

func TestMissingConfigFile(t *testing.T) {
	_, err := loadArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, nil)
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestInvalidEnvironmentInteger(t *testing.T) {
	if _, err := loadArgs(nil, []string{"TMUX_POPUP_OTP_LENGTH=six"}); err == nil {
		t.Fatalf("expected integer error")
	}
}

func TestBindFlagsRejectsUnknownFlag(t *testing.T) {
	if _, err := loadArgs([]string{"--bogus"}, nil); err == nil {
		t.Fatalf("expected unknown flag error")
	}
}

func TestValidate(t *testing.T) {
	base, err := loadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cases := map[string]func(*Config){
		"zero length":   func(c *Config) { c.App.Length = 0 },
		"long length":   func(c *Config) { c.App.Length = MaxLength + 1 },
		"width":         func(c *Config) { c.App.Width = -1 },
		"height":        func(c *Config) { c.App.Height = -1 },
		"alphabet":      func(c *Config) { c.App.Alphabet = "runes" },
		"empty set":     func(c *Config) { c.App.Alphabet = "set:" },
		"delivery mode": func(c *Config) { c.App.Deliver = "email" },
	}
	for name, mutate := range cases {
		cfg := base
		mutate(&cfg)
		if err := Validate(cfg); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
	longest := base
	longest.App.Length = MaxLength
	if err := Validate(longest); err != nil {
		t.Fatalf("expected length %d to be valid: %v", MaxLength, err)
	}
}
