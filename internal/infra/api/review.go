package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/runoshun/taskline/internal/domain"
)

// Journal lists journal entries (the API defaults to the last 30 days).
func (c *Client) Journal(ctx context.Context) ([]domain.JournalEntry, error) {
	entries := []domain.JournalEntry{}
	if err := c.do(ctx, http.MethodGet, "/api/review/journal", nil, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateJournalEntry creates an entry for date (YYYY-MM-DD).
func (c *Client) CreateJournalEntry(ctx context.Context, date, content string) (*domain.JournalEntry, error) {
	body := map[string]string{"entry_date": date, "content": content}
	var entry domain.JournalEntry
	if err := c.do(ctx, http.MethodPost, "/api/review/journal", nil, body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateJournalEntry replaces the content of an entry.
func (c *Client) UpdateJournalEntry(ctx context.Context, id int, content string) (*domain.JournalEntry, error) {
	body := map[string]string{"content": content}
	var entry domain.JournalEntry
	if err := c.do(ctx, http.MethodPut, "/api/review/journal/"+strconv.Itoa(id), nil, body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DailySummary returns the summary for date; empty means today.
func (c *Client) DailySummary(ctx context.Context, date string) (*domain.DailySummary, error) {
	var query url.Values
	if date != "" {
		query = url.Values{"date": {date}}
	}
	var summary domain.DailySummary
	if err := c.do(ctx, http.MethodGet, "/api/review/summary/daily", query, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// WeeklySummary returns the summary for the current week.
func (c *Client) WeeklySummary(ctx context.Context) (*domain.WeeklySummary, error) {
	var summary domain.WeeklySummary
	if err := c.do(ctx, http.MethodGet, "/api/review/summary/weekly", nil, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Insights returns productivity insights.
func (c *Client) Insights(ctx context.Context) (domain.Insights, error) {
	insights := domain.Insights{}
	if err := c.do(ctx, http.MethodGet, "/api/review/insights", nil, nil, &insights); err != nil {
		return nil, err
	}
	return insights, nil
}
