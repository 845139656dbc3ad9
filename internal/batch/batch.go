// Package batch decodes the per-document diagnostic lists a host lint
// engine hands back after linting each virtual document.
package batch

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/mvp-joe/ngx-extract/internal/processor"
)

//go:embed schema.json
var batchSchema string

const schemaURL = "https://ngx-extract.local/batch.schema.json"

var (
	// ErrEmptyInput indicates no batch data was supplied
	ErrEmptyInput = errors.New("empty batch input")

	// ErrInvalidBatch indicates the batch does not match the expected shape
	ErrInvalidBatch = errors.New("invalid diagnostic batch")
)

// Batch holds raw diagnostic records so they can be passed through
// without losing fields the processor does not know about.
type Batch [][]json.RawMessage

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(batchSchema)))
		if err != nil {
			compileErr = fmt.Errorf("failed to parse batch schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("failed to add batch schema: %w", err)
			return
		}

		compiledSchema, compileErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// Decode parses a JSON or YAML batch and validates its shape.
func Decode(data []byte) (Batch, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyInput
	}

	if trimmed[0] != '[' {
		converted, err := yaml.YAMLToJSON(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBatch, err)
		}
		trimmed = bytes.TrimSpace(converted)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(trimmed))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBatch, err)
	}

	s, err := schema()
	if err != nil {
		return nil, err
	}
	if err := s.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBatch, err)
	}

	var b Batch
	if err := json.Unmarshal(trimmed, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBatch, err)
	}
	return b, nil
}

// Recombine returns the raw records of the original file.
func (b Batch) Recombine(filename string) []json.RawMessage {
	return processor.Recombine(b, filename)
}

// Diagnostics converts raw records into processor.Diagnostic values. The
// original file's list must convert; a template list that does not is left
// nil since Recombine discards it anyway.
func (b Batch) Diagnostics() ([][]processor.Diagnostic, error) {
	out := make([][]processor.Diagnostic, len(b))
	for i, list := range b {
		diags, err := ToDiagnostics(list)
		if err != nil {
			if i == 0 {
				return nil, fmt.Errorf("document %d: %w", i, err)
			}
			continue
		}
		out[i] = diags
	}
	return out, nil
}

// ToDiagnostics converts raw records into typed diagnostics.
func ToDiagnostics(records []json.RawMessage) ([]processor.Diagnostic, error) {
	diags := make([]processor.Diagnostic, 0, len(records))
	for i, raw := range records {
		var d processor.Diagnostic
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("diagnostic %d: %w", i, err)
		}
		diags = append(diags, d)
	}
	return diags, nil
}
