package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/CosmoTheDev/prmedia/internal/compose"
)

// WriterChannel prints documents instead of posting them (dry runs).
type WriterChannel struct {
	w      io.Writer
	format string // "json" | "yaml"
}

// NewWriter creates a WriterChannel. Unknown formats fall back to JSON.
func NewWriter(w io.Writer, format string) *WriterChannel {
	if format != "yaml" {
		format = "json"
	}
	return &WriterChannel{w: w, format: format}
}

func (c *WriterChannel) Name() string       { return "stdout" }
func (c *WriterChannel) IsConfigured() bool { return c.w != nil }

func (c *WriterChannel) Send(_ context.Context, doc compose.Document) error {
	if c.format == "json" {
		enc := json.NewEncoder(c.w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(doc)
	}

	// Round-trip through JSON so blocks keep their wire field names.
	raw, err := doc.JSON()
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	enc := yaml.NewEncoder(c.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
