package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Flags struct {
	Addr string
	// StoryPath is a YAML story file, the embedded story is used when empty.
	StoryPath string
	// DataDir holds the CSV sources named by the story, the embedded datasets are used when empty.
	DataDir     string
	LoadTimeout time.Duration
	// Sessions caps how many clients keep navigation state at once.
	Sessions int
	LogLevel string
}

// Env holds the environment's defaults. Flags are parsed on top of it so flags win over the environment.
type Env struct {
	Addr        string        `env:"SCROLLY_ADDR" envDefault:":8080"`
	StoryPath   string        `env:"SCROLLY_STORY"`
	DataDir     string        `env:"SCROLLY_DATA_DIR"`
	LoadTimeout time.Duration `env:"SCROLLY_LOAD_TIMEOUT" envDefault:"10s"`
	Sessions    int           `env:"SCROLLY_SESSIONS" envDefault:"1024"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadEnv reads the SCROLLY_* variables and LOG_LEVEL, filling in defaults for those unset.
func LoadEnv() (Env, error) {
	var defaults Env
	if err := env.Parse(&defaults); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return defaults, nil
}

func ParseFlags(fs *flag.FlagSet, args []string) (*Flags, error) {
	defaults, err := LoadEnv()
	if err != nil {
		return nil, err
	}

	flags := &Flags{}
	fs.StringVar(&flags.Addr, "addr", defaults.Addr, "http listen address")
	fs.StringVar(&flags.StoryPath, "story", defaults.StoryPath, "path to a story YAML file (default: embedded story)")
	fs.StringVar(&flags.DataDir, "data-dir", defaults.DataDir, "directory holding the story's CSV sources (default: embedded data)")
	fs.DurationVar(&flags.LoadTimeout, "load-timeout", defaults.LoadTimeout, "give up loading datasets after this long")
	fs.IntVar(&flags.Sessions, "sessions", defaults.Sessions, "max client sessions kept in memory")
	fs.StringVar(&flags.LogLevel, "log-level", defaults.LogLevel, "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if flags.LoadTimeout <= 0 {
		return nil, fmt.Errorf("load-timeout must be positive, got %s", flags.LoadTimeout)
	}
	if flags.Sessions <= 0 {
		return nil, fmt.Errorf("sessions must be positive, got %d", flags.Sessions)
	}
	return flags, nil
}
