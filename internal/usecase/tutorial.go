package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskline/internal/domain"
)

// ResetTutorial is the use case for making the tutorial run again on the
// next TUI launch.
type ResetTutorial struct {
	prefs domain.PreferenceStore
}

// NewResetTutorial creates a new ResetTutorial use case.
func NewResetTutorial(prefs domain.PreferenceStore) *ResetTutorial {
	return &ResetTutorial{prefs: prefs}
}

// Execute clears the completion flag.
func (uc *ResetTutorial) Execute(_ context.Context) error {
	p, err := uc.prefs.Load()
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}
	p.TutorialCompleted = false
	if err := uc.prefs.Save(p); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
