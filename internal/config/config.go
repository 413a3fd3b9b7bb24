package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/tmux-popup-otp/internal/app"
	"github.com/atomicstack/tmux-popup-otp/internal/code"
	"github.com/atomicstack/tmux-popup-otp/internal/deliver"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
	File    string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	// AppName is the command name; flag sets are created under it.
	AppName   = "tmux-popup-otp"
	envPrefix = "TMUX_POPUP_OTP_"

	// MaxLength bounds the number of cells a popup can show.
	MaxLength = 12
)

const (
	keyLength      = "length"
	keyAlphabet    = "alphabet"
	keyTitle       = "title"
	keyDescription = "description"
	keyDeliver     = "deliver"
	keyTarget      = "target"
	keyBufferName  = "buffer-name"
	keySocket      = "socket"
	keyWidth       = "width"
	keyHeight      = "height"
	keyFooter      = "footer"
	keyTrace       = "trace"
	keyLogFile     = "log-file"
	keyConfig      = "config"
)

// settingKeys lists every key that can come from a flag, the environment or
// a config file.
var settingKeys = []string{
	keyLength, keyAlphabet, keyTitle, keyDescription, keyDeliver, keyTarget,
	keyBufferName, keySocket, keyWidth, keyHeight, keyFooter, keyTrace, keyLogFile,
}

// BindFlags registers the command-line flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.IntP(keyLength, "n", 4, "number of code cells")
	fs.StringP(keyAlphabet, "a", "digits", "accepted characters: digits, alnum, alpha, hex or set:<chars>")
	fs.String(keyTitle, "", "popup title (default \"Enter OTP\")")
	fs.String(keyDescription, "", "text shown under the title")
	fs.StringP(keyDeliver, "d", string(deliver.ModeStdout), "where the accepted code goes: stdout, buffer or send-keys")
	fs.StringP(keyTarget, "t", "", "pane that receives the code for send-keys delivery (default $TMUX_PANE)")
	fs.String(keyBufferName, "", "tmux buffer name for buffer delivery (default: tmux picks one)")
	fs.String(keySocket, "", "path to the tmux socket (overrides environment detection)")
	fs.Int(keyWidth, 0, "desired viewport width in cells (0 uses terminal width)")
	fs.Int(keyHeight, 0, "desired viewport height in rows (0 uses terminal height)")
	fs.Bool(keyFooter, false, "enable footer hint row (disabled by default)")
	fs.Bool(keyTrace, false, "enable verbose JSON trace logging")
	fs.String(keyLogFile, "", "path to the log file")
	fs.StringP(keyConfig, "c", "", "config file (yaml, toml or json)")
}

// FromFlags layers parsed flags over the environment, an optional config
// file and the flag defaults. A flag set on the command line always wins.
func FromFlags(fs *pflag.FlagSet, environ []string) (Config, error) {
	env := parseEnv(environ)
	v := viper.New()
	for _, key := range settingKeys {
		if f := fs.Lookup(key); f != nil {
			v.SetDefault(key, f.DefValue)
		}
	}

	file := envOrDefault(env, envKey(keyConfig), "")
	if f := fs.Lookup(keyConfig); f != nil && f.Changed {
		file = f.Value.String()
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	overrides := make(map[string]interface{})
	for _, key := range settingKeys {
		if value, ok := env[envKey(key)]; ok && strings.TrimSpace(value) != "" {
			overrides[key] = value
		}
	}
	if len(overrides) > 0 {
		if err := v.MergeConfigMap(overrides); err != nil {
			return Config{}, fmt.Errorf("apply environment: %w", err)
		}
	}
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	length, err := intSetting(v, keyLength)
	if err != nil {
		return Config{}, err
	}
	width, err := intSetting(v, keyWidth)
	if err != nil {
		return Config{}, err
	}
	height, err := intSetting(v, keyHeight)
	if err != nil {
		return Config{}, err
	}
	footer, err := boolSetting(v, keyFooter)
	if err != nil {
		return Config{}, err
	}
	trace, err := boolSetting(v, keyTrace)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Length:      length,
			Alphabet:    v.GetString(keyAlphabet),
			Title:       v.GetString(keyTitle),
			Description: v.GetString(keyDescription),
			ShowFooter:  footer,
			Deliver:     v.GetString(keyDeliver),
			Target:      v.GetString(keyTarget),
			BufferName:  v.GetString(keyBufferName),
			SocketPath:  v.GetString(keySocket),
			Width:       width,
			Height:      height,
		},
		Logging: Logging{
			FilePath: v.GetString(keyLogFile),
			Trace:    trace,
		},
		Flags: make(map[string]string, len(settingKeys)),
		File:  file,
	}
	for _, key := range settingKeys {
		cfg.Flags[key] = v.GetString(key)
	}
	return cfg, nil
}

// intSetting reads key strictly: viper's own casting turns garbage into 0.
func intSetting(v *viper.Viper, key string) (int, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer (got %q)", key, raw)
	}
	return parsed, nil
}

func boolSetting(v *viper.Viper, key string) (bool, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return false, nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean (got %q)", key, raw)
	}
	return parsed, nil
}

func envKey(key string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

// Validate ensures the configuration describes a usable popup.
func Validate(cfg Config) error {
	if cfg.App.Length < 1 || cfg.App.Length > MaxLength {
		return fmt.Errorf("length must be between 1 and %d (got %d)", MaxLength, cfg.App.Length)
	}
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if _, err := code.ParseAlphabet(cfg.App.Alphabet); err != nil {
		return err
	}
	if _, err := deliver.ParseMode(cfg.App.Deliver); err != nil {
		return err
	}
	return nil
}
