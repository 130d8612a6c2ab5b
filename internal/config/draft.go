package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// Draft is an unsubmitted application saved per program slug, restored
// when the form reopens.
type Draft struct {
	Proposal string    `json:"proposal"`
	Comments string    `json:"comments,omitempty"`
	SavedAt  time.Time `json:"savedAt"`
}

// draftPath joins the drafts dir with a slug-derived filename. Slugs
// come from the platform, so the join must not escape the drafts dir.
func draftPath(draftsDir, slug string) (string, error) {
	if err := ValidateProgramSlug(slug); err != nil {
		return "", err
	}
	return securejoin.SecureJoin(draftsDir, slug+".json")
}

// SaveDraft writes a draft for the given program slug.
func SaveDraft(draftsDir, slug string, draft *Draft) error {
	path, err := draftPath(draftsDir, slug)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(draftsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create drafts dir: %w", err)
	}

	data, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// LoadDraft reads the draft for a program slug. A missing draft
// returns (nil, nil).
func LoadDraft(draftsDir, slug string) (*Draft, error) {
	path, err := draftPath(draftsDir, slug)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to parse draft %s: %w", path, err)
	}
	return &draft, nil
}

// DeleteDraft removes the draft for a program slug, if present.
func DeleteDraft(draftsDir, slug string) error {
	path, err := draftPath(draftsDir, slug)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
