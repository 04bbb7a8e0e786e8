package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/runoshun/taskline/internal/cache"
	"github.com/runoshun/taskline/internal/domain"
)

// ListJournal is the use case for listing journal entries, newest first.
type ListJournal struct {
	api   domain.ReviewAPI
	cache *cache.Client
}

// NewListJournal creates a new ListJournal use case.
func NewListJournal(api domain.ReviewAPI, c *cache.Client) *ListJournal {
	return &ListJournal{api: api, cache: c}
}

// Execute lists journal entries.
func (uc *ListJournal) Execute(ctx context.Context) ([]domain.JournalEntry, error) {
	entries, err := cache.Query(ctx, uc.cache, KeyJournal, uc.api.Journal)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b domain.JournalEntry) int {
		return strings.Compare(b.EntryDate, a.EntryDate)
	})
	return out, nil
}

// WriteJournalInput contains the parameters for creating or editing an entry.
type WriteJournalInput struct {
	Date    string // YYYY-MM-DD; used when creating (empty = today)
	Content string
	EntryID int // Non-zero edits the entry
}

// WriteJournal is the use case for creating or editing a journal entry.
type WriteJournal struct {
	api   domain.ReviewAPI
	cache *cache.Client
	clock domain.Clock
}

// NewWriteJournal creates a new WriteJournal use case.
func NewWriteJournal(api domain.ReviewAPI, c *cache.Client, clock domain.Clock) *WriteJournal {
	return &WriteJournal{api: api, cache: c, clock: clock}
}

// Execute creates or updates the entry.
func (uc *WriteJournal) Execute(ctx context.Context, in WriteJournalInput) (*domain.JournalEntry, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, domain.ErrEmptyContent
	}

	var (
		entry *domain.JournalEntry
		err   error
	)
	if in.EntryID != 0 {
		entry, err = cache.Mutate(ctx, uc.cache, "update journal", func(ctx context.Context) (*domain.JournalEntry, error) {
			return uc.api.UpdateJournalEntry(ctx, in.EntryID, content)
		})
		if isNotFound(err) {
			return nil, fmt.Errorf("entry #%d: %w", in.EntryID, domain.ErrEntryNotFound)
		}
	} else {
		date := in.Date
		if date == "" {
			date = domain.FormatLocalDate(uc.clock.Now())
		}
		if verr := domain.ValidateDate(date); verr != nil {
			return nil, verr
		}
		entry, err = cache.Mutate(ctx, uc.cache, "create journal", func(ctx context.Context) (*domain.JournalEntry, error) {
			return uc.api.CreateJournalEntry(ctx, date, content)
		})
	}
	if err != nil {
		return nil, fmt.Errorf("write journal: %w", err)
	}

	uc.cache.Invalidate(KeyJournal, KeySummary)
	return entry, nil
}
