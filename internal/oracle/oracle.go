// Package oracle asks a local Ollama model for moves and commentary.
//
// Every failure degrades: a bad or missing move becomes a uniformly random
// legal move, and a failed commentary request becomes a fixed placeholder.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"lukechampine.com/frand"

	"github.com/dulchik/chess-vs-ollama/internal/rules"
)

const (
	DefaultEndpoint = "http://localhost:11434/api/generate"
	DefaultModel    = "llama3.1"

	// Placeholder is returned when the commentary request fails.
	Placeholder = "Hmm, interesting move. Let's see how this plays out!"
)

// Position is what the oracle reads from the board.
type Position interface {
	FEN() string
	Turn() rules.Color
	LegalMoves() []rules.Move
}

type Config struct {
	Endpoint string
	Model    string
	HTTP     *http.Client
}

type Client struct {
	endpoint string
	model    string
	http     *http.Client
	log      zerolog.Logger
	intn     func(n int) int
}

func New(cfg Config, log zerolog.Logger) *Client {
	c := &Client{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		http:     cfg.HTTP,
		log:      log.With().Str("component", "oracle").Logger(),
		intn:     frand.Intn,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	return c
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// RequestMove returns the model's move if it is legal in pos, otherwise a
// random legal move. The only error is ErrNoLegalMoves.
func (c *Client) RequestMove(ctx context.Context, pos Position) (rules.Move, error) {
	legal := pos.LegalMoves()
	if len(legal) == 0 {
		return rules.Move{}, ErrNoLegalMoves
	}

	m, err := c.modelMove(ctx, pos, legal)
	if err != nil {
		fallback := legal[c.intn(len(legal))]
		c.log.Debug().Err(err).Str("fallback", fallback.UCI()).Msg("using random move")
		return fallback, nil
	}
	c.log.Debug().Str("move", m.UCI()).Msg("model move")
	return m, nil
}

func (c *Client) modelMove(ctx context.Context, pos Position, legal []rules.Move) (rules.Move, error) {
	prompt := fmt.Sprintf("You are playing as %s in a chess game. The current board state in FEN notation is: %s. "+
		"What is your next move? Respond with the move in UCI notation "+
		"(e.g., 'e7e5' for moving a piece from e7 to e5).", pos.Turn(), pos.FEN())

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return rules.Move{}, err
	}
	token := firstToken(text)
	m, err := rules.ParseUCI(token)
	if err != nil {
		return rules.Move{}, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	for _, l := range legal {
		if l == m {
			return m, nil
		}
	}
	return rules.Move{}, fmt.Errorf("%w: %s is not legal", ErrInvalidOutput, token)
}

// RequestCommentary returns a short remark about pos, or Placeholder.
func (c *Client) RequestCommentary(ctx context.Context, pos Position) string {
	prompt := fmt.Sprintf("You are a chess master AI providing commentary on a chess game. "+
		"The current board state in FEN notation is: %s.\n"+
		"Provide a brief, witty comment (max 2 sentences) that includes both a friendly taunt and "+
		"some master-level advice about the current game state or potential future moves.\n"+
		"Be creative and entertaining, but also insightful.", pos.FEN())

	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.log.Debug().Err(err).Msg("commentary unavailable")
		return Placeholder
	}
	return strings.TrimSpace(text)
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Model: c.model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrCommunication, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCommunication, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCommunication, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: status %d", ErrCommunication, resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrCommunication, err)
	}
	return out.Response, nil
}

// firstToken is the first whitespace-separated word of the reply, as is.
func firstToken(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
