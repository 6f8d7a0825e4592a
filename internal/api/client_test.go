package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"resumekit/internal/domain"
	"resumekit/internal/wizard"
)

func newTestClient(t *testing.T, srv *httptest.Server, opts Options) *Client {
	t.Helper()
	opts.BaseURL = srv.URL
	if opts.RequestsPerSecond == 0 {
		opts.RequestsPerSecond = 1000
	}
	c, err := NewClient(opts)
	if err != nil {
		t.Fatalf("NewClient error = %v", err)
	}
	return c
}

func TestCreateProfileSendsPayloadAndHeaders(t *testing.T) {
	t.Parallel()

	var (
		gotAuth, gotRequestID, gotContentType string
		gotBody                               map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/profile" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{Tokens: func() string { return "tok-123" }})
	d := domain.NewProfileDraft()
	d.FullName = "Ada"
	d.Skills = []string{"Go"}
	if err := c.CreateProfile(context.Background(), d.Cleaned()); err != nil {
		t.Fatalf("CreateProfile error = %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if _, err := uuid.Parse(gotRequestID); err != nil {
		t.Fatalf("X-Request-ID %q is not a uuid: %v", gotRequestID, err)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q", gotContentType)
	}
	if gotBody["full_name"] != "Ada" {
		t.Fatalf("body = %v", gotBody)
	}
	if edu, ok := gotBody["education"].([]any); !ok || len(edu) != 0 {
		t.Fatalf("education = %#v, want empty list", gotBody["education"])
	}
}

func TestCreateProfileOmitsAuthorizationWhenSignedOut(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h := r.Header.Get("Authorization"); h != "" {
			t.Errorf("Authorization = %q, want none", h)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{})
	if err := c.CreateProfile(context.Background(), domain.NewProfileDraft()); err != nil {
		t.Fatalf("CreateProfile error = %v", err)
	}
}

func TestCreateProfileDecodesErrorBodies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
		wantMsg    string
	}{
		{name: "string detail", status: 400, body: `{"detail":"Profile already exists"}`, wantDetail: "Profile already exists"},
		{name: "validation list", status: 422, body: `{"detail":[{"msg":"field required"},{"msg":"bad phone"}]}`, wantDetail: "field required; bad phone"},
		{name: "message only", status: 500, body: `{"message":"internal"}`, wantMsg: "internal"},
		{name: "message kept verbatim", status: 400, body: `{"message":"  Try later.\n"}`, wantMsg: "  Try later.\n"},
		{name: "accepted is not created", status: 202, body: `{"message":"queued"}`, wantMsg: "queued"},
		{name: "no content is not created", status: 204},
		{name: "not json", status: 502, body: `<html>bad gateway</html>`},
		{name: "empty", status: 503},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := newTestClient(t, srv, Options{}).CreateProfile(context.Background(), domain.NewProfileDraft())
			var respErr *ResponseError
			if !errors.As(err, &respErr) {
				t.Fatalf("error = %v, want *ResponseError", err)
			}
			if respErr.StatusCode != tt.status || respErr.Detail != tt.wantDetail || respErr.Message != tt.wantMsg {
				t.Fatalf("ResponseError = %+v", respErr)
			}
			if !respErr.Rejected() {
				t.Fatal("Rejected should be true")
			}
			if errors.Is(err, domain.ErrSessionExpired) {
				t.Fatal("non-401 must not report session expiry")
			}
		})
	}
}

func TestSubmitOnlyCountsOKAndCreatedAsSuccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status   int
		body     string
		wantKind wizard.ResultKind
		wantMsg  string
	}{
		{status: http.StatusOK, wantKind: wizard.ResultSuccess, wantMsg: "Profile created successfully!"},
		{status: http.StatusCreated, wantKind: wizard.ResultSuccess, wantMsg: "Profile created successfully!"},
		{status: http.StatusAccepted, wantKind: wizard.ResultError, wantMsg: "Failed to create profile. Please try again."},
		{status: http.StatusNoContent, wantKind: wizard.ResultError, wantMsg: "Failed to create profile. Please try again."},
		{status: http.StatusAccepted, body: `{"message":"Queued for review"}`, wantKind: wizard.ResultError, wantMsg: "Queued for review"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(http.StatusText(tt.status)+tt.body, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			d := domain.NewProfileDraft()
			d.FullName = "Ada Lovelace"
			d.Phone = "+44 20 7946 0958"
			d.Skills = []string{"Python"}
			ctrl := wizard.NewWithDraft(d, newTestClient(t, srv, Options{}).Submitter())
			if err := ctrl.Submit(context.Background()); err != nil {
				t.Fatalf("Submit error = %v", err)
			}
			r := ctrl.Result()
			if r == nil || r.Kind != tt.wantKind || r.Message != tt.wantMsg {
				t.Fatalf("result = %+v, want kind %v message %q", r, tt.wantKind, tt.wantMsg)
			}
		})
	}
}

func TestCreateProfileUnauthorizedEndsSession(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Token expired"}`))
	}))
	defer srv.Close()

	calls := 0
	c := newTestClient(t, srv, Options{
		Tokens:         func() string { return "old" },
		OnUnauthorized: func() { calls++ },
	})
	err := c.CreateProfile(context.Background(), domain.NewProfileDraft())
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("error = %v, want ErrSessionExpired", err)
	}
	if calls != 1 {
		t.Fatalf("OnUnauthorized calls = %d, want 1", calls)
	}
	var respErr *ResponseError
	if !errors.As(err, &respErr) || respErr.Detail != "Token expired" {
		t.Fatalf("error = %v", err)
	}
}

func TestUnauthorizedOnPublicPathKeepsSession(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	called := false
	c := newTestClient(t, srv, Options{OnUnauthorized: func() { called = true }})
	err := c.post(context.Background(), "/login", map[string]string{"email": "a@b.c"}, nil)
	if err == nil || errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("error = %v", err)
	}
	if called {
		t.Fatal("OnUnauthorized called for a public path")
	}
}

func TestCreateProfileTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	c := newTestClient(t, srv, Options{})
	srv.Close()

	err := c.CreateProfile(context.Background(), domain.NewProfileDraft())
	if err == nil {
		t.Fatal("expected error")
	}
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		t.Fatalf("transport failure reported as response: %v", err)
	}
	if !strings.HasPrefix(err.Error(), "post /profile:") {
		t.Fatalf("error = %q", err)
	}
}

func TestCreateProfileHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := newTestClient(t, srv, Options{}).CreateProfile(ctx, domain.NewProfileDraft()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Options{BaseURL: "  "}); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewClientLogsRequests(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	var lines []string
	c := newTestClient(t, srv, Options{Logf: func(format string, args ...any) {
		lines = append(lines, format)
	}})
	if err := c.CreateProfile(context.Background(), domain.NewProfileDraft()); err != nil {
		t.Fatalf("CreateProfile error = %v", err)
	}
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "POST %s") {
		t.Fatalf("log lines = %v", lines)
	}
}
