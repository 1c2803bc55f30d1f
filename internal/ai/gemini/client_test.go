package gemini

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/resume-analyzer/internal/capability"
)

type fakeResponse struct {
	resp *genai.GenerateContentResponse
	err  error
}

type fakeModels struct {
	mu      sync.Mutex
	queue   []fakeResponse
	calls   int
	configs []*genai.GenerateContentConfig
	// err answers every call once the queue is drained.
	err error
}

func (f *fakeModels) enqueue(resp *genai.GenerateContentResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, fakeResponse{resp: resp, err: err})
}

func (f *fakeModels) GenerateContent(_ context.Context, _ string, _ []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.configs = append(f.configs, config)
	if len(f.queue) == 0 {
		if f.err != nil {
			return nil, f.err
		}
		return nil, errors.New("unexpected call")
	}
	res := f.queue[0]
	f.queue = f.queue[1:]
	return res.resp, res.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func newTestGenerator(models *fakeModels, maxRetries int) (*Generator, *[]time.Duration) {
	var waits []time.Duration
	g := newGenerator(models, Config{Model: "gemini-pro", MaxRetries: maxRetries}, zap.NewNop())
	g.wait = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	return g, &waits
}

func TestGeneratorRetriesOnTemporaryError(t *testing.T) {
	t.Parallel()

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"})
	models.enqueue(textResponse("retry ok"), nil)

	g, waits := newTestGenerator(models, 2)

	output, err := g.generateContent(context.Background(), "message", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if output != "retry ok" {
		t.Fatalf("unexpected output: %q", output)
	}
	if models.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", models.calls)
	}
	if len(*waits) != 1 || (*waits)[0] != retryBaseDelay {
		t.Fatalf("expected a single backoff of %s, got %v", retryBaseDelay, *waits)
	}
}

func TestGeneratorStopsAfterRetriesExhausted(t *testing.T) {
	t.Parallel()

	models := &fakeModels{}
	tempErr := genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"}
	models.enqueue(nil, tempErr)
	models.enqueue(nil, tempErr)

	g, _ := newTestGenerator(models, 2)

	_, err := g.generateContent(context.Background(), "msg", nil)
	if err == nil {
		t.Fatal("expected error after retries exhausted")
	}
	if capability.IsUnavailable(err) {
		t.Fatalf("temporary errors must stay local failures: %v", err)
	}
	if models.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", models.calls)
	}
}

func TestGeneratorDoesNotRetryOnLongQuotaDelay(t *testing.T) {
	t.Parallel()

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{
		Code:    http.StatusTooManyRequests,
		Status:  "RESOURCE_EXHAUSTED",
		Message: "quota exhausted, retry after 60 seconds",
	})

	g, _ := newTestGenerator(models, 3)

	if _, err := g.generateContent(context.Background(), "msg", nil); err == nil {
		t.Fatal("expected error when quota delay too long")
	}
	if models.calls != 1 {
		t.Fatalf("expected single call, got %d", models.calls)
	}
}

func TestGeneratorHonoursShortQuotaDelay(t *testing.T) {
	t.Parallel()

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{
		Code:    http.StatusTooManyRequests,
		Status:  "RESOURCE_EXHAUSTED",
		Details: []map[string]any{{"retryDelay": "7s"}},
	})
	models.enqueue(textResponse("ok"), nil)

	g, waits := newTestGenerator(models, 3)

	if _, err := g.generateContent(context.Background(), "msg", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*waits) != 1 || (*waits)[0] != 7*time.Second {
		t.Fatalf("expected to wait 7s, got %v", *waits)
	}
}

func TestGeneratorAuthErrorIsUnavailable(t *testing.T) {
	t.Parallel()

	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusForbidden, Status: "PERMISSION_DENIED"})

	g, _ := newTestGenerator(models, 3)

	_, err := g.generateContent(context.Background(), "msg", nil)
	if !capability.IsUnavailable(err) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	if models.calls != 1 {
		t.Fatalf("expected single call, got %d", models.calls)
	}
}

func TestGeneratorNotInitialized(t *testing.T) {
	t.Parallel()

	var g *Generator
	if _, err := g.generateContent(context.Background(), "msg", nil); !capability.IsUnavailable(err) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator(context.Background(), Config{APIKey: "  "}, zap.NewNop())
	if !capability.IsUnavailable(err) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestGenerateTextSetsLimits(t *testing.T) {
	t.Parallel()

	models := &fakeModels{}
	models.enqueue(textResponse("insights"), nil)

	g, _ := newTestGenerator(models, 1)

	if _, err := g.GenerateText(context.Background(), "prompt", 1000, 0.7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := models.configs[0]
	if cfg == nil || cfg.MaxOutputTokens != 1000 {
		t.Fatalf("expected max output tokens 1000, got %+v", cfg)
	}
	if cfg.Temperature == nil || *cfg.Temperature != float32(0.7) {
		t.Fatalf("expected temperature 0.7, got %v", cfg.Temperature)
	}
}

func TestGeneratorRejectsEmptyResponse(t *testing.T) {
	t.Parallel()

	models := &fakeModels{}
	models.enqueue(textResponse("   "), nil)

	g, _ := newTestGenerator(models, 1)

	if _, err := g.generateContent(context.Background(), "msg", nil); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func dnsFailure() error {
	return &url.Error{
		Op:  "Post",
		URL: "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent",
		Err: &net.OpError{
			Op:  "dial",
			Net: "tcp",
			Err: &net.DNSError{Err: "no such host", Name: "generativelanguage.googleapis.com"},
		},
	}
}

func TestGeneratorUnreachableIsUnavailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{name: "dns", err: dnsFailure()},
		{name: "connection refused", err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connect: connection refused")}},
		{name: "tls", err: &url.Error{Op: "Post", URL: "https://example.com", Err: errors.New("tls: failed to verify certificate")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			models := &fakeModels{err: tt.err}
			g, waits := newTestGenerator(models, 3)

			_, err := NewClassifier(g, nil).ClassifyZeroShot(context.Background(), "python developer", []string{"has python experience", "does not have python experience"})
			if !capability.IsUnavailable(err) {
				t.Fatalf("expected unavailable error, got %v", err)
			}
			if models.calls != 1 {
				t.Fatalf("expected single call, got %d", models.calls)
			}
			if len(*waits) != 0 {
				t.Fatalf("expected no retries, got waits %v", *waits)
			}
		})
	}
}

func TestGeneratorTransportTimeoutIsRetried(t *testing.T) {
	t.Parallel()

	models := &fakeModels{}
	models.enqueue(nil, &url.Error{Op: "Post", URL: "https://example.com", Err: context.DeadlineExceeded})
	models.enqueue(textResponse("ok"), nil)

	g, waits := newTestGenerator(models, 2)

	if _, err := g.generateContent(context.Background(), "msg", nil); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if len(*waits) != 1 {
		t.Fatalf("expected one retry wait, got %v", *waits)
	}
}
