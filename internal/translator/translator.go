package translator

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"hovertrans/backend/internal/logger"
)

// DefaultTargetLanguage is used when Translate is called without a target.
const DefaultTargetLanguage = "ko"

const translatePath = "/translate_a/single"

var (
	ErrEmptyText     = errors.New("text is empty")
	ErrRequestFailed = errors.New("translation request failed")
	ErrDecode        = errors.New("translation response malformed")
	ErrNoTranslation = errors.New("no translation found")
)

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("translation request failed: status %d", e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrRequestFailed
}

// Translator translates text into a target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// Fetcher performs the raw GET against the translation endpoint.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (status int, body []byte, err error)
}

// Options configures a GoogleTranslator.
type Options struct {
	Endpoint string
	Timeout  time.Duration
	QPS      int
}

// GoogleTranslator talks to the public gtx translate endpoint.
type GoogleTranslator struct {
	endpoint string
	timeout  time.Duration
	fetcher  Fetcher
	limiter  *Throttle
}

// New creates a GoogleTranslator using fetcher for transport.
func New(fetcher Fetcher, opts Options) *GoogleTranslator {
	return &GoogleTranslator{
		endpoint: strings.TrimRight(opts.Endpoint, "/"),
		timeout:  opts.Timeout,
		fetcher:  fetcher,
		limiter:  NewThrottle(opts.QPS),
	}
}

// Translate returns the translated text. Failures are reported as errors
// wrapping ErrRequestFailed, ErrDecode or ErrNoTranslation; callers convert
// them to display text at the UI boundary.
func (g *GoogleTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	if targetLang == "" {
		targetLang = DefaultTargetLanguage
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limit: %v", ErrRequestFailed, err)
	}

	start := time.Now()
	status, body, err := g.fetcher.Fetch(ctx, g.buildURL(text, targetLang))
	if err != nil {
		logger.Warn("translate fetch failed", "module", "translator", "action", "fetch", "resource", "translation", "result", "failed", "target_language", targetLang, "error", err)
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if status < 200 || status > 299 {
		logger.Warn("translate http error", "module", "translator", "action", "fetch", "resource", "translation", "result", "failed", "target_language", targetLang, "status_code", status)
		return "", &StatusError{StatusCode: status}
	}

	translated, err := ParseResponse(body)
	if err != nil {
		logger.Warn("translate parse failed", "module", "translator", "action", "parse", "resource", "translation", "result", "failed", "target_language", targetLang, "error", err)
		return "", err
	}

	logger.Debug("translate ok", "module", "translator", "action", "fetch", "resource", "translation", "result", "ok", "target_language", targetLang, "chars", len([]rune(text)), "duration_ms", time.Since(start).Milliseconds())
	return translated, nil
}

func (g *GoogleTranslator) buildURL(text, targetLang string) string {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "auto")
	params.Set("tl", targetLang)
	params.Set("dt", "t")
	params.Set("q", text)
	return g.endpoint + translatePath + "?" + params.Encode()
}
