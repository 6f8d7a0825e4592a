package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"

	"resumekit/internal/api"
	"resumekit/internal/domain"
	"resumekit/internal/state"
	"resumekit/internal/wizard"
)

// SubmitterFactory builds the authenticated submit hook for one command run.
type SubmitterFactory func(cfg state.Config, session state.Session, logf func(string, ...any)) (wizard.SubmitFunc, error)

type App struct {
	Paths   state.Paths
	Stdout  io.Writer
	Stderr  io.Writer
	Verbose bool
	Now     func() time.Time

	IsInteractiveTerminal func() bool
	RunProfileWizard      ProfileWizardRunner
	Confirm               func(label string) (bool, error)
	NewSubmitter          SubmitterFactory
}

func New(paths state.Paths, stdout io.Writer, stderr io.Writer) *App {
	a := &App{
		Paths:                 paths,
		Stdout:                stdout,
		Stderr:                stderr,
		Verbose:               true,
		Now:                   func() time.Time { return time.Now().UTC() },
		IsInteractiveTerminal: defaultIsInteractiveTerminal,
		RunProfileWizard:      runProfileWizardInteractive,
		Confirm:               confirmPrompt,
	}
	a.NewSubmitter = a.apiSubmitter
	return a
}

func (a *App) SetVerbose(verbose bool) {
	a.Verbose = verbose
}

func (a *App) logf(format string, args ...any) {
	if !a.Verbose {
		return
	}
	fmt.Fprintf(a.Stderr, "resumekit: "+format+"\n", args...)
}

// loadContext reads the effective config and the stored session. A missing session is
// reported to the caller; commands that only read local files never call this.
func (a *App) loadContext() (state.Config, state.Session, error) {
	a.logf("loading config from %s", a.Paths.ConfigPath())
	cfg, err := state.LoadConfig(a.Paths)
	if err != nil {
		return state.Config{}, state.Session{}, err
	}
	if err := cfg.Validate(); err != nil {
		return state.Config{}, state.Session{}, fmt.Errorf("invalid config %s: %w", a.Paths.ConfigPath(), err)
	}
	session, err := state.LoadSession(a.Paths)
	if err != nil {
		return state.Config{}, state.Session{}, err
	}
	if !session.SignedIn() {
		return state.Config{}, state.Session{}, errors.New("not signed in; run `resumekit auth token <token>` or set " + state.TokenEnv)
	}
	if session.FromEnv {
		a.logf("using session token from %s", state.TokenEnv)
	}
	return cfg, session, nil
}

func (a *App) apiSubmitter(cfg state.Config, session state.Session, logf func(string, ...any)) (wizard.SubmitFunc, error) {
	client, err := api.NewClient(api.Options{
		BaseURL:           cfg.APIBaseURL,
		Timeout:           cfg.RequestTimeout(),
		RequestsPerSecond: cfg.RequestsPerSecond,
		Tokens:            func() string { return session.Token },
		OnUnauthorized:    a.endSession(session),
		Logf:              logf,
	})
	if err != nil {
		return nil, err
	}
	return client.Submitter(), nil
}

// endSession drops the stored token after the server rejects it. A token supplied
// through the environment is left to the caller.
func (a *App) endSession(session state.Session) func() {
	return func() {
		if session.FromEnv {
			a.logf("server rejected the token from %s", state.TokenEnv)
			return
		}
		if err := state.ClearSession(a.Paths); err != nil {
			a.logf("failed to clear session: %v", err)
			return
		}
		a.logf("session expired; cleared %s", a.Paths.SessionPath())
	}
}

// lockedSubmit serializes submissions across processes for the same user.
func (a *App) lockedSubmit(submit wizard.SubmitFunc) wizard.SubmitFunc {
	return func(ctx context.Context, payload domain.ProfileDraft) error {
		lock, err := state.AcquireLock(a.Paths)
		if errors.Is(err, state.ErrLocked) {
			return lockBusyError{err: err}
		}
		if err != nil {
			return err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				a.logf("failed to release lock: %v", err)
			}
		}()
		return submit(ctx, payload)
	}
}

// lockBusyError surfaces a held submission lock as a user-facing result message.
type lockBusyError struct {
	err error
}

func (e lockBusyError) Error() string { return e.err.Error() }
func (e lockBusyError) Unwrap() error { return e.err }
func (e lockBusyError) UserMessage() string {
	return "Another profile submission is in progress. Please try again shortly."
}
func (e lockBusyError) Rejected() bool { return false }

func defaultIsInteractiveTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func confirmPrompt(label string) (bool, error) {
	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := p.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
