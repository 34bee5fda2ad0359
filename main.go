package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/dulchik/chess-vs-ollama/internal/config"
	"github.com/dulchik/chess-vs-ollama/internal/gui"
	"github.com/dulchik/chess-vs-ollama/internal/layout"
	"github.com/dulchik/chess-vs-ollama/internal/logging"
	"github.com/dulchik/chess-vs-ollama/internal/oracle"
	"github.com/dulchik/chess-vs-ollama/internal/rules"
	"github.com/dulchik/chess-vs-ollama/internal/session"
	"github.com/dulchik/chess-vs-ollama/internal/sprites"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if config.IsHelp(err) {
		fmt.Fprintln(os.Stdout, err)
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logging.New(os.Stderr, cfg.Debug)

	client := oracle.New(oracle.Config{
		Endpoint: cfg.Endpoint,
		Model:    cfg.Model,
		HTTP:     &http.Client{Timeout: cfg.Timeout},
	}, log)
	log.Info().Str("endpoint", cfg.Endpoint).Str("model", cfg.Model).Msg("oracle configured")

	set, err := sprites.Load(layout.PieceSize, cfg.PieceDir)
	if err != nil {
		log.Fatal().Err(err).Msg("load pieces")
	}
	fonts, err := gui.LoadFonts(cfg.FontPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load fonts")
	}

	newBoard := func() rules.Board { return rules.New() }
	if cfg.StartFEN != "" {
		if _, err := rules.NewFromFEN(cfg.StartFEN); err != nil {
			log.Fatal().Err(err).Msg("start position")
		}
		newBoard = func() rules.Board {
			g, _ := rules.NewFromFEN(cfg.StartFEN)
			return g
		}
	}

	s := session.New(newBoard, client, rules.White, log)
	game := gui.New(context.Background(), s, set, fonts, log)

	ebiten.SetWindowSize(layout.ScreenWidth, layout.ScreenHeight)
	ebiten.SetWindowTitle(gui.Title)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("run game")
	}
}
