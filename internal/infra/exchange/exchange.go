// Package exchange reads, validates and writes data export documents.
package exchange

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/runoshun/taskline/internal/domain"
)

//go:embed schema.json
var schemaContent string

const schemaURL = "https://taskline.local/schemas/export.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaContent)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// ValidationError describes the first schema violation in an import document.
type ValidationError struct {
	Path    string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", domain.ErrInvalidImport, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", domain.ErrInvalidImport, e.Path, e.Message)
}

// Unwrap returns domain.ErrInvalidImport.
func (e *ValidationError) Unwrap() error {
	return domain.ErrInvalidImport
}

// Decode parses an import document. The top level must be a JSON object
// (ErrImportNotObject otherwise) that satisfies the export schema.
func Decode(data []byte) (*domain.ExportDocument, error) {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImportNotObject, err)
	}
	if _, ok := raw.(map[string]any); !ok {
		return nil, domain.ErrImportNotObject
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(raw); err != nil {
		return nil, toValidationError(err)
	}

	var doc domain.ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}
	return &doc, nil
}

func toValidationError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ValidationError{Message: err.Error()}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &ValidationError{Path: pointerToPath(ve.InstanceLocation), Message: ve.Message}
}

// pointerToPath turns "/tasks/0/title" into "tasks[0].title".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for i, part := range strings.Split(ptr, "/") {
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ReadFile reads and decodes an import document from path.
func ReadFile(path string) (*domain.ExportDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	return Decode(data)
}

// Preview returns the counts shown before an import is confirmed.
func Preview(doc *domain.ExportDocument) domain.ImportSummary {
	return doc.Summary()
}

// Write encodes doc as indented JSON.
func Write(w io.Writer, doc *domain.ExportDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// WriteFile writes doc to path, creating parent directories.
func WriteFile(path string, doc *domain.ExportDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

// FileName returns the default export file name for a YYYY-MM-DD date.
func FileName(date string) string {
	return "taskline-export-" + date + ".json"
}

// Codec implements domain.DocumentCodec with Decode and Write.
type Codec struct{}

// Ensure Codec implements domain.DocumentCodec.
var _ domain.DocumentCodec = Codec{}

// Decode parses and validates an import document.
func (Codec) Decode(data []byte) (*domain.ExportDocument, error) {
	return Decode(data)
}

// Encode writes an export document as indented JSON.
func (Codec) Encode(w io.Writer, doc *domain.ExportDocument) error {
	return Write(w, doc)
}
