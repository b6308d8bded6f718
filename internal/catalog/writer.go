package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"fjacquet/cert-archive/internal/fileutils"
	"fjacquet/cert-archive/internal/models"
	"fjacquet/cert-archive/internal/parsererror"
)

//go:embed schema.json
var indexSchemaJSON []byte

const indexSchemaName = "schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func indexSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(indexSchemaName, bytes.NewReader(indexSchemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(indexSchemaName)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// MarshalIndex renders the index as two-space indented JSON with non-ASCII
// and HTML characters kept verbatim.
func MarshalIndex(index *models.CatalogIndex) ([]byte, error) {
	for i := range index.Certificates {
		if index.Certificates[i].Skills == nil {
			index.Certificates[i].Skills = []string{}
		}
	}
	if index.Metadata.Years == nil {
		index.Metadata.Years = []string{}
	}
	if index.Certificates == nil {
		index.Certificates = []models.CertificateRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(index); err != nil {
		return nil, fmt.Errorf("failed to encode index: %w", err)
	}
	return buf.Bytes(), nil
}

// ValidateIndex checks rendered index JSON against the embedded schema.
func ValidateIndex(data []byte) error {
	schema, err := indexSchema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal index: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return &parsererror.ValidationError{Subject: "catalog index", Reason: err.Error()}
	}
	return nil
}

// WriteIndex validates the index and writes it to path, replacing any
// previous file. Nothing is written when validation fails.
func WriteIndex(index *models.CatalogIndex, path string) error {
	data, err := MarshalIndex(index)
	if err != nil {
		return err
	}
	if err := ValidateIndex(data); err != nil {
		return err
	}
	return fileutils.WriteFile(path, data, 0644)
}
