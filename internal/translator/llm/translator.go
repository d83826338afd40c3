package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hovertrans/backend/internal/logger"
	"hovertrans/backend/internal/translator"
)

// Translator implements translator.Translator on top of a chat model.
type Translator struct {
	provider Provider
	timeout  time.Duration
	limiter  *translator.Throttle
}

// NewTranslator wraps provider. QPS and timeout behave as for the endpoint translator.
func NewTranslator(provider Provider, timeout time.Duration, qps int) *Translator {
	return &Translator{
		provider: provider,
		timeout:  timeout,
		limiter:  translator.NewThrottle(qps),
	}
}

// Translate returns the model's translation of text. Provider failures wrap
// translator.ErrRequestFailed; an empty answer is translator.ErrNoTranslation.
func (t *Translator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", translator.ErrEmptyText
	}
	if targetLang == "" {
		targetLang = translator.DefaultTargetLanguage
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", translator.ErrRequestFailed, err)
	}

	start := time.Now()
	out, err := t.provider.Complete(ctx, TranslatePrompt(targetLang), WrapInput(text))
	if err != nil {
		logger.Warn("llm translation failed", "module", "translator", "action", "translate", "resource", "llm", "result", "failed", "provider", t.provider.Name(), "target_language", targetLang, "error", err)
		return "", fmt.Errorf("%w: %s: %v", translator.ErrRequestFailed, t.provider.Name(), err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", translator.ErrNoTranslation
	}
	logger.Debug("llm translation", "module", "translator", "action", "translate", "resource", "llm", "result", "ok", "provider", t.provider.Name(), "target_language", targetLang, "duration_ms", time.Since(start).Milliseconds())
	return out, nil
}
