// Package chat wraps the lead-qualification assistant's language model
// behind an opaque text-in/text-out contract. The model itself is an
// external collaborator; the only policy owned here is the friendly
// fallback reply when the collaborator fails.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// DefaultFallback is shown whenever the completer fails; errors are
// never propagated to the visitor.
const DefaultFallback = "Sorry, I'm having a little trouble right now. Leave your email or book a call and Sal will get back to you personally."

// persona is the fixed style instruction prepended to every prompt.
const persona = "You are Sal, a friendly AI-automation consultant. " +
	"Answer briefly, qualify the visitor's automation needs, and steer serious leads toward booking an intro call."

// Completer produces a reply for a prompt. Implementations may call any
// LLM backend; the service treats them as a black box.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete implements Completer.
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Service answers visitor messages through a Completer.
type Service struct {
	completer Completer
	fallback  string
	logger    *slog.Logger
}

// NewService wires a chat service. An empty fallback uses
// DefaultFallback.
func NewService(completer Completer, fallback string, logger *slog.Logger) *Service {
	if fallback == "" {
		fallback = DefaultFallback
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{completer: completer, fallback: fallback, logger: logger}
}

// Reply returns the assistant's answer for the visitor's text, plus
// whether the fallback message was served because the completer was
// missing, failed, or answered blank.
func (s *Service) Reply(ctx context.Context, userText string) (string, bool) {
	if s == nil || s.completer == nil {
		return s.fallbackText(), true
	}

	prompt := fmt.Sprintf("%s\n\nVisitor: %s", persona, strings.TrimSpace(userText))
	reply, err := s.completer.Complete(ctx, prompt)
	if err != nil || strings.TrimSpace(reply) == "" {
		s.logger.With("service", "ChatService", "operation", "Reply").
			WarnContext(ctx, "completer failed, serving fallback", "error", err)
		return s.fallbackText(), true
	}
	return reply, false
}

func (s *Service) fallbackText() string {
	if s == nil || s.fallback == "" {
		return DefaultFallback
	}
	return s.fallback
}
