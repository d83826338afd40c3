package translator_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hovertrans/backend/internal/network"
	"hovertrans/backend/internal/translator"
)

func newStubTranslator(t *testing.T, handler http.HandlerFunc, opts translator.Options) *translator.GoogleTranslator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts.Endpoint = srv.URL
	if opts.QPS == 0 {
		opts.QPS = 100
	}
	fetcher := translator.NewHTTPFetcher(network.NewClientFactoryForTest(srv.Client()), time.Second)
	return translator.New(fetcher, opts)
}

func TestTranslate_Success(t *testing.T) {
	var gotQuery map[string]string
	tr := newStubTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/translate_a/single", r.URL.Path)
		q := r.URL.Query()
		gotQuery = map[string]string{
			"client": q.Get("client"),
			"sl":     q.Get("sl"),
			"tl":     q.Get("tl"),
			"dt":     q.Get("dt"),
			"q":      q.Get("q"),
		}
		_, _ = w.Write([]byte(`[[["안녕 세계","hello world",null,null,10]],null,"en"]`))
	}, translator.Options{})

	got, err := tr.Translate(context.Background(), "hello world", "ko")
	require.NoError(t, err)
	require.Equal(t, "안녕 세계", got)
	require.Equal(t, map[string]string{
		"client": "gtx",
		"sl":     "auto",
		"tl":     "ko",
		"dt":     "t",
		"q":      "hello world",
	}, gotQuery)
}

func TestTranslate_DefaultsTargetLanguage(t *testing.T) {
	tr := newStubTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "ko", r.URL.Query().Get("tl"))
		_, _ = w.Write([]byte(`[[["x","y"]]]`))
	}, translator.Options{})

	_, err := tr.Translate(context.Background(), "y", "")
	require.NoError(t, err)
}

func TestTranslate_EncodesQuery(t *testing.T) {
	tr := newStubTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "a&b=c ?d#", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`[[["ok","a&b=c ?d#"]]]`))
	}, translator.Options{})

	got, err := tr.Translate(context.Background(), "a&b=c ?d#", "en")
	require.NoError(t, err)
	require.Equal(t, "ok", got)
}

func TestTranslate_HTTPError(t *testing.T) {
	tr := newStubTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, translator.Options{})

	got, err := tr.Translate(context.Background(), "hello", "ko")
	require.Empty(t, got)
	require.ErrorIs(t, err, translator.ErrRequestFailed)

	var statusErr *translator.StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
}

func TestTranslate_MalformedBody(t *testing.T) {
	tr := newStubTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>captcha</html>`))
	}, translator.Options{})

	_, err := tr.Translate(context.Background(), "hello", "ko")
	require.ErrorIs(t, err, translator.ErrDecode)
}

func TestTranslate_EmptyText(t *testing.T) {
	tr := newStubTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("endpoint must not be called for empty text")
	}, translator.Options{})

	_, err := tr.Translate(context.Background(), "   ", "ko")
	require.ErrorIs(t, err, translator.ErrEmptyText)
}

func TestTranslate_Timeout(t *testing.T) {
	release := make(chan struct{})
	tr := newStubTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, translator.Options{Timeout: 50 * time.Millisecond})
	defer close(release)

	_, err := tr.Translate(context.Background(), "hello", "ko")
	require.ErrorIs(t, err, translator.ErrRequestFailed)
}

func TestTranslate_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	tr := translator.New(
		translator.NewHTTPFetcher(network.NewClientFactory(nil), time.Second),
		translator.Options{Endpoint: endpoint, QPS: 100},
	)

	_, err := tr.Translate(context.Background(), "hello", "ko")
	require.ErrorIs(t, err, translator.ErrRequestFailed)
}

func TestThrottle_BurstThenQueue(t *testing.T) {
	th := translator.NewThrottle(2)
	ctx := context.Background()

	require.NoError(t, th.Wait(ctx))
	require.NoError(t, th.Wait(ctx))

	short, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	require.Error(t, th.Wait(short))
}

func TestThrottle_DefaultRate(t *testing.T) {
	th := translator.NewThrottle(0)
	ctx := context.Background()
	for range translator.DefaultRateLimit {
		require.NoError(t, th.Wait(ctx))
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	require.Error(t, th.Wait(cancelled))
}
