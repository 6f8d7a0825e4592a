package wizard

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"resumekit/internal/domain"
)

type fakeResponseError struct {
	msg      string
	rejected bool
}

func (e *fakeResponseError) Error() string       { return "request failed" }
func (e *fakeResponseError) UserMessage() string { return e.msg }
func (e *fakeResponseError) Rejected() bool      { return e.rejected }

func submittableDraft() domain.ProfileDraft {
	d := validBasics()
	d.Skills = []string{" Go ", "", "Rust"}
	d.Projects = []domain.Project{{}, {Title: "resumekit", Description: "CLI"}}
	return d
}

func TestSubmitSendsCleanedPayload(t *testing.T) {
	t.Parallel()

	var got domain.ProfileDraft
	calls := 0
	c := NewWithDraft(submittableDraft(), func(_ context.Context, payload domain.ProfileDraft) error {
		calls++
		got = payload
		return nil
	})
	c.errors = domain.ErrorMap{"skills_1": "short"}

	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit error = %v", err)
	}
	if calls != 1 {
		t.Fatalf("submit calls = %d, want 1", calls)
	}
	if !reflect.DeepEqual(got.Skills, []string{"Go", "Rust"}) {
		t.Fatalf("skills = %v", got.Skills)
	}
	if len(got.Education) != 0 || len(got.Certifications) != 0 {
		t.Fatalf("empty records were sent: %+v", got)
	}
	if len(got.Projects) != 1 || got.Projects[0].Title != "resumekit" {
		t.Fatalf("projects = %+v", got.Projects)
	}

	r := c.Result()
	if r == nil || r.Kind != ResultSuccess || r.Message != successMessage {
		t.Fatalf("result = %+v", r)
	}
	if len(c.Errors()) != 0 {
		t.Fatalf("errors = %v, want none", c.Errors())
	}
	if c.Submitting() {
		t.Fatal("still submitting")
	}
	// The draft itself keeps its editing shape.
	if c.Draft().Len(domain.SectionEducation) != 1 {
		t.Fatal("draft was replaced by the cleaned payload")
	}
}

func TestSubmitInvalidDraftDoesNotCallService(t *testing.T) {
	t.Parallel()

	called := false
	c := New(func(context.Context, domain.ProfileDraft) error {
		called = true
		return nil
	})
	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit error = %v", err)
	}
	if called {
		t.Fatal("service called for invalid draft")
	}
	errs := c.Errors()
	for _, key := range []string{"full_name", "phone", domain.SkillsErrorKey} {
		if _, ok := errs[key]; !ok {
			t.Fatalf("missing %s in %v", key, errs)
		}
	}
	if c.Result() != nil {
		t.Fatal("result should stay empty")
	}
}

func TestSubmitFailureMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "server detail", err: &fakeResponseError{msg: "Profile already exists", rejected: true}, want: "Profile already exists"},
		{name: "wrapped detail", err: fmt.Errorf("create profile: %w", &fakeResponseError{msg: "Bad phone", rejected: true}), want: "Bad phone"},
		{name: "rejected without detail", err: &fakeResponseError{rejected: true}, want: rejectedMessage},
		{name: "blank message falls back", err: &fakeResponseError{msg: "  ", rejected: true}, want: rejectedMessage},
		{name: "message kept verbatim", err: &fakeResponseError{msg: " Try again later. ", rejected: true}, want: " Try again later. "},
		{name: "transport", err: errors.New("connection refused"), want: transportMessage},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := NewWithDraft(submittableDraft(), func(context.Context, domain.ProfileDraft) error {
				return tt.err
			})
			if err := c.Submit(context.Background()); err != nil {
				t.Fatalf("Submit error = %v", err)
			}
			r := c.Result()
			if r == nil || r.Kind != ResultError || r.Message != tt.want {
				t.Fatalf("result = %+v, want error %q", r, tt.want)
			}
			if c.Submitting() {
				t.Fatal("still submitting")
			}
		})
	}
}

func TestSubmitSessionExpiredIsReturned(t *testing.T) {
	t.Parallel()

	c := NewWithDraft(submittableDraft(), func(context.Context, domain.ProfileDraft) error {
		return fmt.Errorf("POST /profile: %w", domain.ErrSessionExpired)
	})
	err := c.Submit(context.Background())
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("error = %v, want ErrSessionExpired", err)
	}
	if c.Result() != nil {
		t.Fatalf("result = %+v, want nil", c.Result())
	}
}

func TestBeginSubmitRejectsConcurrentSubmission(t *testing.T) {
	t.Parallel()

	c := NewWithDraft(submittableDraft(), nil)
	if _, err := c.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit error = %v", err)
	}
	if !c.Submitting() {
		t.Fatal("Submitting should be true")
	}
	if _, err := c.BeginSubmit(); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("error = %v, want ErrSubmitInFlight", err)
	}
	if err := c.FinishSubmit(nil); err != nil {
		t.Fatalf("FinishSubmit error = %v", err)
	}
	if _, err := c.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit after finish error = %v", err)
	}
}

func TestBeginSubmitClearsPreviousResult(t *testing.T) {
	t.Parallel()

	c := NewWithDraft(submittableDraft(), nil)
	c.result = &Result{Kind: ResultError, Message: "old"}
	if _, err := c.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit error = %v", err)
	}
	if c.Result() != nil {
		t.Fatal("stale result kept")
	}
}

func TestSubmitWithoutSubmitter(t *testing.T) {
	t.Parallel()

	c := NewWithDraft(submittableDraft(), nil)
	if err := c.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if c.Submitting() {
		t.Fatal("submitting flag left set")
	}
}
