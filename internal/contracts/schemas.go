package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemasFS embed.FS

const schemaBaseURL = "https://real-estate-system.local/schemas/"

const (
	ResolveRequest = "resolve_request"
	SearchRequest  = "search_request"
	SortRequest    = "sort_request"
)

// ErrSchemaViolation - тело запроса не соответствует контракту.
var ErrSchemaViolation = errors.New("request body does not match schema")

// Validator держит скомпилированные схемы входящих запросов.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// NewValidator компилирует все встроенные схемы. Схемы ссылаются друг
// на друга через $ref, поэтому сначала все добавляются как ресурсы.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	files, err := fs.Glob(schemasFS, "schemas/*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}
	for _, file := range files {
		raw, err := schemasFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", file, err)
		}
		if err := compiler.AddResource(schemaBaseURL+path.Base(file), bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("failed to add schema resource %s: %w", file, err)
		}
	}

	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(files))}
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".json")
		schema, err := compiler.Compile(schemaBaseURL + path.Base(file))
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", file, err)
		}
		v.schemas[name] = schema
	}
	return v, nil
}

// Validate проверяет сырое JSON-тело против схемы name.
func (v *Validator) Validate(name string, body []byte) error {
	schema, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("schema %q is not registered", name)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", ErrSchemaViolation, err)
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("%w: %s", ErrSchemaViolation, describe(ve))
		}
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	return nil
}

// describe возвращает самую глубокую причину, она понятнее клиенту
func describe(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	location := ve.InstanceLocation
	if location == "" {
		location = "/"
	}
	return location + ": " + ve.Message
}
