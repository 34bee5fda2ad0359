// Package config reads command-line options with environment fallbacks.
package config

import (
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

type Config struct {
	Endpoint string        `long:"endpoint" env:"CHESS_OLLAMA_ENDPOINT" default:"http://localhost:11434/api/generate" description:"Ollama generate endpoint"`
	Model    string        `long:"model" env:"CHESS_OLLAMA_MODEL" default:"llama3.1" description:"model name sent with every prompt"`
	Timeout  time.Duration `long:"timeout" env:"CHESS_OLLAMA_TIMEOUT" default:"0s" description:"per-request timeout, 0 for none"`
	StartFEN string        `long:"fen" description:"start from this FEN instead of the initial position"`
	FontPath string        `long:"font" description:"TTF file for panel text (default Go Regular)"`
	PieceDir string        `long:"pieces" description:"directory of wK.svg ... bP.svg piece images"`
	Debug    bool          `long:"debug" description:"enable debug logging"`
}

// Load parses args (without the program name). A --help request comes back
// as a *flags.Error of type flags.ErrHelp carrying the usage text.
func Load(args []string) (Config, error) {
	var cfg Config
	parser := flags.NewParser(&cfg, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "chess-vs-ollama"
	if _, err := parser.ParseArgs(args); err != nil {
		return Config{}, err
	}

	if cfg.Timeout < 0 {
		return Config{}, fmt.Errorf("timeout must not be negative: %s", cfg.Timeout)
	}
	if cfg.Model == "" {
		return Config{}, fmt.Errorf("model must not be empty")
	}
	return cfg, nil
}

// IsHelp reports whether err is a --help request rather than a failure.
func IsHelp(err error) bool {
	ferr, ok := err.(*flags.Error)
	return ok && ferr.Type == flags.ErrHelp
}
