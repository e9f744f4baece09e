// Package config loads the game settings from flags, environment variables
// and an optional config file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"picotet/tetris"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "PICOTET"

const (
	DefaultPort     = 9000
	DefaultAddress  = "localhost:9000"
	DefaultLogLevel = "info"
)

type Config struct {
	Board struct {
		Width  int `mapstructure:"width"`
		Height int `mapstructure:"height"`
	} `mapstructure:"board"`
	Score struct {
		Increment int `mapstructure:"increment"`
	} `mapstructure:"score"`
	Queue struct {
		Length int `mapstructure:"length"`
	} `mapstructure:"queue"`
	Delay struct {
		Flash time.Duration `mapstructure:"flash"`
		Clear time.Duration `mapstructure:"clear"`
	} `mapstructure:"delay"`
	Log struct {
		File  string `mapstructure:"file"`
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Gravity time.Duration `mapstructure:"gravity"`
	Address string        `mapstructure:"address"`
	Online  bool          `mapstructure:"online"`
	Port    int           `mapstructure:"port"`
	NoColor bool          `mapstructure:"no_color"`
}

// New returns a viper instance with every key defaulted and bound to the
// environment.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("board.width", tetris.DefaultWidth)
	v.SetDefault("board.height", tetris.DefaultHeight)
	v.SetDefault("score.increment", tetris.DefaultScoreIncrement)
	v.SetDefault("queue.length", tetris.DefaultQueueLength)
	v.SetDefault("delay.flash", tetris.DefaultFlashDelay)
	v.SetDefault("delay.clear", tetris.DefaultClearDelay)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("gravity", time.Duration(0))
	v.SetDefault("address", DefaultAddress)
	v.SetDefault("online", false)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("no_color", false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

var flagName = strings.NewReplacer(".", "-", "_", "-")

// BindFlags binds the flags the command defines to their config keys. A key
// like log.file is bound to the flag log-file.
func BindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for _, key := range v.AllKeys() {
		name := flagName.Replace(key)
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}
	return nil
}

// Load reads file when set and decodes the settings.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %q: %w", file, err)
		}
	}
	var c Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	))
	if err := v.Unmarshal(&c, hook); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Board.Width < tetris.FrameWidth {
		errs = append(errs, fmt.Errorf("board.width must be at least %d, got %d", tetris.FrameWidth, c.Board.Width))
	}
	if c.Board.Height < 2*tetris.FrameHeight {
		errs = append(errs, fmt.Errorf("board.height must be at least %d, got %d", 2*tetris.FrameHeight, c.Board.Height))
	}
	if c.Score.Increment <= 0 {
		errs = append(errs, fmt.Errorf("score.increment must be positive, got %d", c.Score.Increment))
	}
	if c.Queue.Length < 2 {
		errs = append(errs, fmt.Errorf("queue.length must be at least 2, got %d", c.Queue.Length))
	}
	if c.Delay.Flash < 0 || c.Delay.Clear < 0 || c.Gravity < 0 {
		errs = append(errs, errors.New("durations can't be negative"))
	}
	if _, err := c.level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// GameOptions returns the engine rules described by c.
func (c *Config) GameOptions() *tetris.Options {
	return &tetris.Options{
		Width:          c.Board.Width,
		Height:         c.Board.Height,
		ScoreIncrement: c.Score.Increment,
		QueueLength:    c.Queue.Length,
		FlashDelay:     c.Delay.Flash,
		ClearDelay:     c.Delay.Clear,
	}
}

// Logger returns a JSON logger writing to log.file, or to w when no file is
// configured. A nil w discards everything. The returned function closes the
// file.
func (c *Config) Logger(w io.Writer) (*slog.Logger, func() error, error) {
	level, err := c.level()
	if err != nil {
		return nil, nil, err
	}
	closer := func() error { return nil }
	if c.Log.File != "" {
		f, err := os.OpenFile(c.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f.Close
	}
	if w == nil {
		return slog.New(slog.DiscardHandler), closer, nil
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), closer, nil
}

func (c *Config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return l, fmt.Errorf("invalid log.level: %w", err)
	}
	return l, nil
}
