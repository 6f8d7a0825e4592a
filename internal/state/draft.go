package state

import (
	"errors"
	"fmt"
	"os"

	"resumekit/internal/domain"
)

// LoadDraft reads a profile draft from YAML. Lists the file leaves out come back with
// one empty record, as a fresh session would have.
func LoadDraft(path string) (domain.ProfileDraft, error) {
	var d domain.ProfileDraft
	if err := LoadYAML(path, &d); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ProfileDraft{}, fmt.Errorf("draft %s does not exist", path)
		}
		return domain.ProfileDraft{}, fmt.Errorf("parse %s: %w", path, err)
	}
	d.Normalize()
	return d, nil
}

func SaveDraft(path string, d domain.ProfileDraft) error {
	if err := SaveYAML(path, d); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
