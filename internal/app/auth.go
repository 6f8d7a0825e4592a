package app

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"resumekit/internal/state"
)

func (a *App) RunAuthSetToken(token string) (int, error) {
	if err := state.SaveSession(a.Paths, token, a.Now()); err != nil {
		return 2, err
	}
	a.logf("stored session in %s", a.Paths.SessionPath())
	fmt.Fprintln(a.Stdout, "Signed in.")
	return 0, nil
}

func (a *App) RunAuthClear() (int, error) {
	if err := state.ClearSession(a.Paths); err != nil {
		return 1, err
	}
	fmt.Fprintln(a.Stdout, "Signed out.")
	return 0, nil
}

// RunAuthStatus exits 1 when no token is available.
func (a *App) RunAuthStatus() (int, error) {
	session, err := state.LoadSession(a.Paths)
	if err != nil {
		return 2, err
	}
	switch {
	case !session.SignedIn():
		fmt.Fprintln(a.Stdout, "Not signed in.")
		return 1, nil
	case session.FromEnv:
		fmt.Fprintf(a.Stdout, "Signed in with token from %s.\n", state.TokenEnv)
	case session.SavedAt.IsZero():
		fmt.Fprintln(a.Stdout, "Signed in.")
	default:
		fmt.Fprintf(a.Stdout, "Signed in since %s.\n", session.SavedAt.Format("2006-01-02 15:04 MST"))
	}
	return 0, nil
}

// RunConfigShow prints the effective configuration after file and environment layering.
func (a *App) RunConfigShow() (int, error) {
	cfg, err := state.LoadConfig(a.Paths)
	if err != nil {
		return 2, err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return 1, err
	}
	if _, err := a.Stdout.Write(b); err != nil {
		return 1, err
	}
	if err := cfg.Validate(); err != nil {
		return 2, errors.Join(fmt.Errorf("config %s is invalid", a.Paths.ConfigPath()), err)
	}
	return 0, nil
}

// RunConfigSet writes one key to config.yaml and prints the stored value.
func (a *App) RunConfigSet(key, value string) (int, error) {
	cfg, err := state.SetConfigValue(a.Paths, key, value)
	if err != nil {
		return 2, err
	}
	a.logf("updated %s", a.Paths.ConfigPath())
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return 1, err
	}
	_, err = a.Stdout.Write(b)
	return 0, err
}
