/*
Package assistant is the chat support channel backed by an external
generative model.

PURPOSE:
  A thin pass-through: one prompt plus the running transcript in, one
  reply out. The provider is abstracted behind the Completer interface so
  tests (and offline deployments) substitute a fake.

FAILURE POLICY:
  Any transport or provider failure is absorbed here and replaced with a
  fixed localized fallback message. The error never reaches the
  transcript and never crashes the session. No retries, no provider
  timeout beyond the request context.

SEE ALSO:
  - gemini.go: The HTTP-backed Completer
  - api/: The chat endpoint that owns the transcript
*/
package assistant

import (
	"context"
	"errors"
	"log"
)

// Locale selects the reply language.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleZH Locale = "zh"
)

// Speaker identifies a transcript line's author.
type Speaker string

const (
	SpeakerUser  Speaker = "user"
	SpeakerModel Speaker = "model"
)

// Message is one transcript line.
type Message struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// ErrProvider wraps any transport or provider failure from a Completer.
var ErrProvider = errors.New("assistant provider failure")

// Completer produces a reply for a prompt given the prior transcript.
type Completer interface {
	Complete(ctx context.Context, prompt string, history []Message, locale Locale) (string, error)
}

// Localized fallback replies, substituted verbatim on provider failure.
var fallbackMessages = map[Locale]string{
	LocaleEN: "Mabuhay! I am having some technical trouble. Please try again later or contact your PAN-ASIA coordinator.",
	LocaleZH: "您好，系統暫時出現問題。請稍後再試或直接聯繫您的汎亞服務人員。",
}

// FallbackMessage returns the canned reply for the locale (English for
// anything unrecognized).
func FallbackMessage(locale Locale) string {
	if msg, ok := fallbackMessages[locale]; ok {
		return msg
	}
	return fallbackMessages[LocaleEN]
}

// Service wraps a Completer with the fallback policy.
type Service struct {
	completer Completer
}

func NewService(c Completer) *Service {
	return &Service{completer: c}
}

// Reply asks the provider for a response. On any failure the localized
// fallback is returned instead; the error is logged and swallowed.
func (s *Service) Reply(ctx context.Context, prompt string, history []Message, locale Locale) string {
	text, err := s.completer.Complete(ctx, prompt, history, locale)
	if err != nil {
		log.Printf("assistant: provider failure, serving fallback: %v", err)
		return FallbackMessage(locale)
	}
	return text
}
