package insights

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

// scriptedTransport fails the first failures round trips, then serves body
// as a successful completion response.
type scriptedTransport struct {
	calls    int
	failures int
	body     string
}

func (t *scriptedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.calls++
	if t.calls <= t.failures {
		return nil, errors.New("connection reset")
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(t.body)),
		Request:    req,
	}, nil
}

func newScriptedClient(rt http.RoundTripper) *openai.Client {
	cfg := openai.DefaultConfig("test-key")
	cfg.HTTPClient = &http.Client{Transport: rt}
	return openai.NewClientWithConfig(cfg)
}

const completionBody = `{"id":"cmpl-1","object":"chat.completion","choices":[` +
	`{"index":0,"message":{"role":"assistant","content":"The batch skews positive."},"finish_reason":"stop"}]}`

func TestGenerateNarrativeRetriesTransientFailures(t *testing.T) {
	transport := &scriptedTransport{failures: 2, body: completionBody}
	client := newScriptedClient(transport)

	narrative, err := generateNarrative(context.Background(), client, Summary{Total: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if narrative != "The batch skews positive." {
		t.Errorf("narrative = %q", narrative)
	}
	if transport.calls != 3 {
		t.Errorf("round trips = %d, want 3 (two failures then success)", transport.calls)
	}
}

func TestGenerateNarrativeGivesUpAfterRetries(t *testing.T) {
	transport := &scriptedTransport{failures: 10, body: completionBody}
	client := newScriptedClient(transport)

	if _, err := generateNarrative(context.Background(), client, Summary{Total: 3}); err == nil {
		t.Fatal("expected error when every attempt fails")
	}
	if transport.calls != narrativeRetryAttempts {
		t.Errorf("round trips = %d, want %d", transport.calls, narrativeRetryAttempts)
	}
}

func TestGenerateNarrativeEmptyChoices(t *testing.T) {
	transport := &scriptedTransport{body: `{"id":"cmpl-2","object":"chat.completion","choices":[]}`}
	client := newScriptedClient(transport)

	narrative, err := generateNarrative(context.Background(), client, Summary{Total: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if narrative != "" {
		t.Errorf("narrative = %q, want empty for a response with no choices", narrative)
	}
}

func TestNarrativeWithoutAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := Narrative(context.Background(), Summary{Total: 1}); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("error = %v, want ErrNoAPIKey", err)
	}
}
