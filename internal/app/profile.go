package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"resumekit/internal/domain"
	"resumekit/internal/state"
	"resumekit/internal/wizard"
)

type ProfileOptions struct {
	// From seeds the wizard with a draft file.
	From string
	// SaveTo receives the draft when the wizard exits without submitting.
	SaveTo string
}

type SubmitOptions struct {
	Path string
	Yes  bool
}

// RunProfile runs the interactive profile wizard.
func (a *App) RunProfile(opts ProfileOptions) error {
	if a.IsInteractiveTerminal == nil || !a.IsInteractiveTerminal() {
		return errors.New("resumekit profile requires an interactive terminal; use `resumekit profile submit <file>` instead")
	}
	if a.RunProfileWizard == nil {
		return errors.New("profile wizard is not configured")
	}

	draft := domain.NewProfileDraft()
	if opts.From != "" {
		loaded, err := state.LoadDraft(opts.From)
		if err != nil {
			return err
		}
		a.logf("loaded draft from %s", opts.From)
		draft = loaded
	}

	cfg, session, err := a.loadContext()
	if err != nil {
		return err
	}
	submit, err := a.NewSubmitter(cfg, session, a.logf)
	if err != nil {
		return err
	}

	result, err := a.RunProfileWizard(ProfileWizardInput{
		Draft:      draft,
		Submit:     a.lockedSubmit(submit),
		APIBaseURL: cfg.APIBaseURL,
	})
	if err != nil {
		return err
	}
	switch {
	case result.SessionExpired:
		a.saveUnsubmitted(opts.SaveTo, result.Draft)
		return fmt.Errorf("%w; run `resumekit auth token <token>` to sign in again", domain.ErrSessionExpired)
	case result.Submitted:
		fmt.Fprintln(a.Stdout, result.Message)
		return nil
	default:
		a.saveUnsubmitted(opts.SaveTo, result.Draft)
		return nil
	}
}

func (a *App) saveUnsubmitted(path string, draft domain.ProfileDraft) {
	if path == "" {
		return
	}
	if err := state.SaveDraft(path, draft); err != nil {
		a.logf("failed to save draft: %v", err)
		return
	}
	fmt.Fprintf(a.Stdout, "Draft saved to %s\n", path)
}

// RunValidate checks a draft file against every step. Per-skill advisories are printed
// but do not fail the run.
func (a *App) RunValidate(path string) (int, error) {
	draft, err := state.LoadDraft(path)
	if err != nil {
		return 2, err
	}
	errs := wizard.ValidateAll(draft)
	a.printErrors(errs)
	if wizard.Blocking(errs) {
		return 1, nil
	}
	fmt.Fprintf(a.Stdout, "%s: ok\n", path)
	return 0, nil
}

// RunSubmit validates a draft file and sends it without the interactive wizard.
func (a *App) RunSubmit(opts SubmitOptions) (int, error) {
	draft, err := state.LoadDraft(opts.Path)
	if err != nil {
		return 2, err
	}
	cfg, session, err := a.loadContext()
	if err != nil {
		return 2, err
	}

	ctrl := wizard.NewWithDraft(draft, nil)
	payload, err := ctrl.BeginSubmit()
	if errors.Is(err, wizard.ErrInvalidDraft) {
		a.printErrors(ctrl.Errors())
		return 1, nil
	}
	if err != nil {
		return 1, err
	}

	if !opts.Yes {
		if a.IsInteractiveTerminal == nil || !a.IsInteractiveTerminal() {
			return 2, errors.New("refusing to submit without confirmation; pass --yes in non-interactive mode")
		}
		ok, err := a.Confirm(fmt.Sprintf("Create profile for %s at %s", strings.TrimSpace(payload.FullName), cfg.APIBaseURL))
		if err != nil {
			return 1, err
		}
		if !ok {
			fmt.Fprintln(a.Stdout, "Submission cancelled.")
			return 1, nil
		}
	}

	submit, err := a.NewSubmitter(cfg, session, a.logf)
	if err != nil {
		return 2, err
	}
	a.logf("submitting %s", opts.Path)
	if err := ctrl.FinishSubmit(a.lockedSubmit(submit)(context.Background(), payload)); err != nil {
		return 1, fmt.Errorf("%w; run `resumekit auth token <token>` to sign in again", err)
	}
	r := ctrl.Result()
	if r == nil {
		return 1, errors.New("submission finished without a result")
	}
	if r.Kind != wizard.ResultSuccess {
		return 1, errors.New(r.Message)
	}
	fmt.Fprintln(a.Stdout, r.Message)
	return 0, nil
}

// RunTemplate writes an empty draft, to stdout when out is empty.
func (a *App) RunTemplate(out string) (int, error) {
	draft := domain.NewProfileDraft()
	if out == "" || out == "-" {
		b, err := yaml.Marshal(draft)
		if err != nil {
			return 1, err
		}
		_, err = a.Stdout.Write(b)
		return 0, err
	}
	if err := state.SaveDraft(out, draft); err != nil {
		return 1, err
	}
	a.logf("wrote template to %s", out)
	return 0, nil
}

func (a *App) printErrors(errs domain.ErrorMap) {
	for _, k := range errs.Keys() {
		fmt.Fprintf(a.Stdout, "%s: %s\n", k, errs[k])
	}
}
