package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	PropertySchema = "property"
	OwnerSchema    = "owner"
	ImageSchema    = "image"
	TraceSchema    = "trace"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Validator хранит скомпилированные схемы тел запросов mock API.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// NewValidator компилирует все встроенные схемы.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	compiler.AssertFormat = true

	names := []string{PropertySchema, OwnerSchema, ImageSchema, TraceSchema}
	for _, name := range names {
		raw, err := schemaFS.ReadFile("schemas/" + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
		}
		if err := compiler.AddResource(name+".json", bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("failed to add schema %s: %w", name, err)
		}
	}

	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(names))}
	for _, name := range names {
		schema, err := compiler.Compile(name + ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
		}
		v.schemas[name] = schema
	}
	return v, nil
}

// BodyError описывает тело запроса, не прошедшее проверку.
// Fields пустой, если тело вообще не является JSON.
type BodyError struct {
	Message string
	Fields  map[string][]string
}

func (e *BodyError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(keys, ", "))
}

// Validate проверяет тело по схеме и возвращает *BodyError при нарушениях.
func (v *Validator) Validate(schemaName string, body []byte) error {
	schema, ok := v.schemas[schemaName]
	if !ok {
		return fmt.Errorf("schema '%s' not found", schemaName)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return &BodyError{Message: "Request body is not valid JSON"}
	}

	if err := schema.Validate(doc); err != nil {
		verr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return fmt.Errorf("JSON schema validation failed: %w", err)
		}
		fields := make(map[string][]string)
		collectViolations(verr, fields)
		return &BodyError{Message: "Invalid request body", Fields: fields}
	}
	return nil
}

// collectViolations раскладывает листовые нарушения по полям вида "price.amount".
func collectViolations(verr *jsonschema.ValidationError, fields map[string][]string) {
	if len(verr.Causes) == 0 {
		field := instanceField(verr.InstanceLocation)
		fields[field] = append(fields[field], verr.Message)
		return
	}
	for _, cause := range verr.Causes {
		collectViolations(cause, fields)
	}
}

func instanceField(location string) string {
	trimmed := strings.Trim(location, "/")
	if trimmed == "" {
		return "body"
	}
	return strings.ReplaceAll(trimmed, "/", ".")
}
