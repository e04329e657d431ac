package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

type recordingTransport struct {
	last *http.Request
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.last = req
	rec := httptest.NewRecorder()
	rec.WriteHeader(http.StatusOK)
	res := rec.Result()
	res.Request = req
	return res, nil
}

func doGet(t *testing.T, client *http.Client) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://upstream.test/api/x", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if _, err := client.Do(req); err != nil {
		t.Fatalf("do request: %v", err)
	}
}

func TestTransport_StagesRunInRegistrationOrder(t *testing.T) {
	var order []string
	stage := func(name string) RequestStage {
		return RequestStage{Name: name, Apply: func(*http.Request) error {
			order = append(order, name)
			return nil
		}}
	}

	base := &recordingTransport{}
	tr := NewTransport(base, []RequestStage{stage("first"), stage("second"), stage("third")}, nil)
	client := &http.Client{Transport: tr}

	doGet(t, client)

	if len(order) != 3 || order[0] != "first" || order[1] != "second" || order[2] != "third" {
		t.Fatalf("unexpected stage order: %v", order)
	}
}

func TestAttachCredential_ReadsSupplierPerCall(t *testing.T) {
	tok := "first-token"
	supply := func(context.Context) string { return tok }

	base := &recordingTransport{}
	client := &http.Client{Transport: NewTransport(base, []RequestStage{AttachCredential(supply)}, nil)}

	doGet(t, client)
	if got := base.last.Header.Get("Authorization"); got != "Bearer first-token" {
		t.Fatalf("expected first token, got %q", got)
	}

	// The latest persisted token wins on the next call.
	tok = "second-token"
	doGet(t, client)
	if got := base.last.Header.Get("Authorization"); got != "Bearer second-token" {
		t.Fatalf("expected second token, got %q", got)
	}
}

func TestAttachCredential_DoesNotOverrideExisting(t *testing.T) {
	supply := func(context.Context) string { return "store-token" }

	base := &recordingTransport{}
	client := &http.Client{Transport: NewTransport(base, []RequestStage{AttachCredential(supply)}, nil)}

	req, _ := http.NewRequest(http.MethodGet, "http://upstream.test/", nil)
	req.Header.Set("Authorization", "Bearer explicit")
	if _, err := client.Do(req); err != nil {
		t.Fatalf("do request: %v", err)
	}

	if got := base.last.Header.Get("Authorization"); got != "Bearer explicit" {
		t.Fatalf("explicit header was overridden: %q", got)
	}
}

func TestAttachCredential_NoTokenNoHeader(t *testing.T) {
	supply := func(context.Context) string { return "" }

	base := &recordingTransport{}
	client := &http.Client{Transport: NewTransport(base, []RequestStage{AttachCredential(supply)}, nil)}

	doGet(t, client)
	if got := base.last.Header.Get("Authorization"); got != "" {
		t.Fatalf("expected no Authorization header, got %q", got)
	}
}

func TestNormalizeBearer_FixesSpacing(t *testing.T) {
	base := &recordingTransport{}
	client := &http.Client{Transport: NewTransport(base, []RequestStage{NormalizeBearer()}, nil)}

	req, _ := http.NewRequest(http.MethodGet, "http://upstream.test/", nil)
	req.Header.Set("Authorization", "Bearer     tok123")
	if _, err := client.Do(req); err != nil {
		t.Fatalf("do request: %v", err)
	}

	if got := base.last.Header.Get("Authorization"); got != "Bearer tok123" {
		t.Fatalf("header not normalized: %q", got)
	}
}

func TestNew_DefaultChainAttachesAndNormalizes(t *testing.T) {
	supply := func(context.Context) string { return "  tok123 " }

	client := New(supply, 0, zerolog.Nop())
	base := &recordingTransport{}
	client.Transport.(*Transport).base = base

	doGet(t, client)
	if got := base.last.Header.Get("Authorization"); got != "Bearer tok123" {
		t.Fatalf("default chain produced %q", got)
	}
}
