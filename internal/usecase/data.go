package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/runoshun/taskline/internal/cache"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/taskstore"
)

// ExportDataInput contains the destination of an export.
type ExportDataInput struct {
	Writer io.Writer
}

// ExportDataOutput reports what was exported.
type ExportDataOutput struct {
	Summary domain.ImportSummary
}

// ExportData is the use case for downloading all user data.
type ExportData struct {
	api    domain.DataAPI
	codec  domain.DocumentCodec
	cache  *cache.Client
	logger domain.Logger
}

// NewExportData creates a new ExportData use case.
func NewExportData(api domain.DataAPI, codec domain.DocumentCodec, c *cache.Client, logger domain.Logger) *ExportData {
	return &ExportData{api: api, codec: codec, cache: c, logger: logger}
}

// Execute fetches the export document and writes it to in.Writer.
func (uc *ExportData) Execute(ctx context.Context, in ExportDataInput) (*ExportDataOutput, error) {
	doc, err := cache.Mutate(ctx, uc.cache, "export", uc.api.Export)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if err := uc.codec.Encode(in.Writer, doc); err != nil {
		return nil, fmt.Errorf("write export: %w", err)
	}

	summary := doc.Summary()
	uc.logger.Info(0, "data", fmt.Sprintf("exported %d tasks, %d journal entries", summary.Tasks, summary.JournalEntries))
	return &ExportDataOutput{Summary: summary}, nil
}

// PreviewImportInput contains the raw import file.
type PreviewImportInput struct {
	Data []byte
}

// PreviewImportOutput is the validated document and its counts.
type PreviewImportOutput struct {
	Document *domain.ExportDocument
	Summary  domain.ImportSummary
}

// PreviewImport is the use case for validating an import file before
// asking the user to confirm it. Nothing is sent to the API.
type PreviewImport struct {
	codec domain.DocumentCodec
}

// NewPreviewImport creates a new PreviewImport use case.
func NewPreviewImport(codec domain.DocumentCodec) *PreviewImport {
	return &PreviewImport{codec: codec}
}

// Execute decodes and validates the file.
func (uc *PreviewImport) Execute(_ context.Context, in PreviewImportInput) (*PreviewImportOutput, error) {
	doc, err := uc.codec.Decode(in.Data)
	if err != nil {
		return nil, err
	}
	return &PreviewImportOutput{Document: doc, Summary: doc.Summary()}, nil
}

// ImportDataInput contains a previewed document.
type ImportDataInput struct {
	Document *domain.ExportDocument
}

// ImportData is the use case for uploading a previewed document.
// Every cached view is dropped afterwards since any of them may have changed.
type ImportData struct {
	api    domain.DataAPI
	cache  *cache.Client
	store  *taskstore.Store
	logger domain.Logger
}

// NewImportData creates a new ImportData use case.
func NewImportData(api domain.DataAPI, c *cache.Client, store *taskstore.Store, logger domain.Logger) *ImportData {
	return &ImportData{api: api, cache: c, store: store, logger: logger}
}

// Execute imports the document.
func (uc *ImportData) Execute(ctx context.Context, in ImportDataInput) (*domain.ImportResult, error) {
	if in.Document == nil {
		return nil, domain.ErrInvalidImport
	}

	res, err := cache.Mutate(ctx, uc.cache, "import", func(ctx context.Context) (*domain.ImportResult, error) {
		return uc.api.Import(ctx, in.Document)
	})
	if err != nil {
		uc.logger.Warn(0, "data", fmt.Sprintf("import failed: %v", err))
		return nil, fmt.Errorf("import: %w", err)
	}

	uc.cache.Clear()
	uc.store.Clear()
	uc.logger.Info(0, "data", res.Message)
	return res, nil
}
