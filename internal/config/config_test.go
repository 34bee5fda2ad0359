package config

import (
	"os"
	"testing"
	"time"
)

// clearEnv removes the CHESS_OLLAMA_* variables for the test. A variable
// set to "" still counts as set.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CHESS_OLLAMA_ENDPOINT", "CHESS_OLLAMA_MODEL", "CHESS_OLLAMA_TIMEOUT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Endpoint != "http://localhost:11434/api/generate" || cfg.Model != "llama3.1" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Timeout != 0 || cfg.Debug || cfg.StartFEN != "" {
		t.Fatalf("expected no timeout, no start FEN and debug off, got %+v", cfg)
	}
}

func TestEnvThenFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHESS_OLLAMA_MODEL", "mistral")
	t.Setenv("CHESS_OLLAMA_TIMEOUT", "30s")

	cfg, err := Load([]string{"--timeout", "5s", "--debug"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Model != "mistral" {
		t.Fatalf("expected env model, got %q", cfg.Model)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("expected flag to override env timeout, got %s", cfg.Timeout)
	}
	if !cfg.Debug {
		t.Fatalf("expected debug on")
	}
}

func TestEnvTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHESS_OLLAMA_TIMEOUT", "45s")
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Timeout != 45*time.Second {
		t.Fatalf("expected env timeout, got %s", cfg.Timeout)
	}
}

func TestBadEnvDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHESS_OLLAMA_TIMEOUT", "soon")
	if _, err := Load(nil); err == nil {
		t.Fatalf("expected an error for a bad duration")
	}
}

func TestNegativeTimeout(t *testing.T) {
	clearEnv(t)
	if _, err := Load([]string{"--timeout=-1s"}); err == nil {
		t.Fatalf("expected an error for a negative timeout")
	}
}

func TestEmptyModel(t *testing.T) {
	clearEnv(t)
	if _, err := Load([]string{"--model="}); err == nil {
		t.Fatalf("expected an error for an empty model")
	}
}

func TestUnknownFlag(t *testing.T) {
	clearEnv(t)
	_, err := Load([]string{"--nope"})
	if err == nil {
		t.Fatalf("expected an error for an unknown flag")
	}
	if IsHelp(err) {
		t.Fatalf("unknown flag reported as a help request")
	}
}

func TestHelp(t *testing.T) {
	clearEnv(t)
	_, err := Load([]string{"--help"})
	if !IsHelp(err) {
		t.Fatalf("expected a help request, got %v", err)
	}
}

func TestStartFEN(t *testing.T) {
	clearEnv(t)
	fen := "8/8/8/8/8/8/R7/K6k w - - 149 100"
	cfg, err := Load([]string{"--fen", fen})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StartFEN != fen {
		t.Fatalf("expected start fen %q, got %q", fen, cfg.StartFEN)
	}
}
