package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/runoshun/taskline/internal/domain"
)

// RecordFocusInput describes a work session that ran to completion.
type RecordFocusInput struct {
	EndedAt  time.Time
	Duration time.Duration
	TaskID   int
}

// RecordFocus is the use case for logging a finished work session
// against the selected task.
type RecordFocus struct {
	log    domain.FocusLog
	logger domain.Logger
}

// NewRecordFocus creates a new RecordFocus use case.
func NewRecordFocus(log domain.FocusLog, logger domain.Logger) *RecordFocus {
	return &RecordFocus{log: log, logger: logger}
}

// Execute records the session. A session without a task is rejected.
func (uc *RecordFocus) Execute(ctx context.Context, in RecordFocusInput) error {
	if in.TaskID == 0 {
		return domain.ErrNoTaskSelected
	}
	s := domain.FocusSession{
		StartedAt: in.EndedAt.Add(-in.Duration),
		Duration:  in.Duration,
		TaskID:    in.TaskID,
	}
	if err := uc.log.Record(ctx, s); err != nil {
		uc.logger.Warn(in.TaskID, "focus", fmt.Sprintf("record failed: %v", err))
		return fmt.Errorf("record focus: %w", err)
	}
	uc.logger.Info(in.TaskID, "focus", fmt.Sprintf("work session recorded (%s)", in.Duration))
	return nil
}

// FocusHistoryInput selects the history window.
type FocusHistoryInput struct {
	Days int // Number of days back from today, including today (0 = 7)
}

// FocusTotal is the focused time spent on one task.
type FocusTotal struct {
	Total    time.Duration
	TaskID   int
	Sessions int
}

// FocusHistoryOutput contains the sessions in the window and per-task totals.
type FocusHistoryOutput struct {
	Since    time.Time
	Sessions []domain.FocusSession
	Totals   []FocusTotal // Largest total first
}

// FocusHistory is the use case for summarising recorded work sessions.
type FocusHistory struct {
	log   domain.FocusLog
	clock domain.Clock
}

// NewFocusHistory creates a new FocusHistory use case.
func NewFocusHistory(log domain.FocusLog, clock domain.Clock) *FocusHistory {
	return &FocusHistory{log: log, clock: clock}
}

// Execute lists sessions since local midnight Days-1 days ago.
func (uc *FocusHistory) Execute(ctx context.Context, in FocusHistoryInput) (*FocusHistoryOutput, error) {
	days := in.Days
	if days <= 0 {
		days = 7
	}
	now := uc.clock.Now()
	since := time.Date(now.Year(), now.Month(), now.Day()-(days-1), 0, 0, 0, 0, now.Location())

	sessions, err := uc.log.List(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("focus history: %w", err)
	}

	index := make(map[int]int)
	var totals []FocusTotal
	for _, s := range sessions {
		i, ok := index[s.TaskID]
		if !ok {
			i = len(totals)
			index[s.TaskID] = i
			totals = append(totals, FocusTotal{TaskID: s.TaskID})
		}
		totals[i].Total += s.Duration
		totals[i].Sessions++
	}
	slices.SortFunc(totals, func(a, b FocusTotal) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.TaskID, b.TaskID)
	})

	return &FocusHistoryOutput{Since: since, Sessions: sessions, Totals: totals}, nil
}
