// Package llm talks to the hosted language-model providers behind a single
// Completer interface. Provider failures are reported as ErrTimeout or
// ErrUnavailable so callers can map them without knowing the backend.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/pageza/mealmind/backend/config"
)

// Roles used in Message.Role
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

var (
	ErrTimeout     = errors.New("llm provider timed out")
	ErrUnavailable = errors.New("llm provider unavailable")
)

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is one provider call
type CompletionRequest struct {
	Model    string
	Messages []Message
	// JSONResponse asks the provider for a JSON object when it supports that mode.
	JSONResponse bool
	Temperature  float64
	MaxTokens    int
}

// Completer returns the text of a single completion.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// New builds the Completer for the configured provider.
func New(ctx context.Context, cfg config.LLMConfig) (Completer, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.APIKey, cfg.APIURL, cfg.MaxTokens), nil
	case config.ProviderGemini:
		return NewGemini(ctx, cfg.APIKey, cfg.MaxTokens)
	case config.ProviderBedrock:
		awsCfg, err := config.LoadAWSConfig(ctx, cfg.Region)
		if err != nil {
			return nil, err
		}
		return NewBedrock(awsCfg, cfg.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

// classify wraps a transport error in ErrTimeout or ErrUnavailable.
func classify(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrUnavailable) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// split separates the system instruction from the conversational turns.
func split(messages []Message) (string, []Message) {
	var system []string
	var turns []Message
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
			continue
		}
		turns = append(turns, m)
	}
	return strings.Join(system, "\n\n"), turns
}

func maxTokens(req CompletionRequest, fallback int) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return fallback
}
