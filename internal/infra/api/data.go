package api

import (
	"context"
	"net/http"

	"github.com/runoshun/taskline/internal/domain"
)

// Export downloads the data export document.
func (c *Client) Export(ctx context.Context) (*domain.ExportDocument, error) {
	var doc domain.ExportDocument
	if err := c.do(ctx, http.MethodGet, "/api/export", nil, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Import uploads an export document.
// Counts arrive as imported_count or imported depending on the server version.
func (c *Client) Import(ctx context.Context, doc *domain.ExportDocument) (*domain.ImportResult, error) {
	var resp struct {
		ImportedCount map[string]int `json:"imported_count"`
		Imported      map[string]int `json:"imported"`
		Message       string         `json:"message"`
		Conflicts     []string       `json:"conflicts"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/import", nil, doc, &resp); err != nil {
		return nil, err
	}

	counts := resp.ImportedCount
	if counts == nil {
		counts = resp.Imported
	}
	return &domain.ImportResult{
		ImportedCount: counts,
		Message:       resp.Message,
		Conflicts:     resp.Conflicts,
	}, nil
}
