// Package main generates JSON schemas for the grading case file and the JSON
// report, so editors can validate case files and consumers can validate
// reports.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/Sumatoshi-tech/autograde/pkg/grader"
	"github.com/Sumatoshi-tech/autograde/pkg/report"
)

// Schema represents a JSON Schema.
type Schema struct {
	Schema      string             `json:"$schema,omitempty"`
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	Type        string             `json:"type,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Ref         string             `json:"$ref,omitempty"`
	Definitions map[string]*Schema `json:"definitions,omitempty"`

	AdditionalProperties *bool `json:"additionalProperties,omitempty"`
}

// target is one generated schema: the Go type and the struct tag naming its
// fields in the serialized form.
type target struct {
	title string
	value any
	tag   string
}

var targets = map[string]target{
	"case":   {title: "Grading case file", value: &grader.Case{}, tag: "yaml"},
	"report": {title: "Grading report", value: &report.Summary{}, tag: "json"},
}

var outputDir string

func main() {
	flag.StringVar(&outputDir, "o", "docs/schemas", "Output directory for schemas")
	flag.Parse()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	for name, tgt := range targets {
		schema := generateSchema(tgt)
		if err := writeSchema(name, schema); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing schema for %s: %v\n", name, err)
			os.Exit(1)
		}

		fmt.Printf("Generated schema for %s\n", name)
	}

	fmt.Println("All schemas generated successfully")
}

func generateSchema(tgt target) *Schema {
	t := reflect.TypeOf(tgt.value)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	g := &generator{tag: tgt.tag, defs: make(map[string]*Schema)}
	props, required := g.structToProperties(t)

	schema := &Schema{
		Schema:      "https://json-schema.org/draft-07/schema#",
		Title:       tgt.title,
		Description: fmt.Sprintf("JSON schema for %s, generated from %s", tgt.title, t.String()),
		Type:        "object",
		Properties:  props,
		Required:    required,
	}

	if len(g.defs) > 0 {
		schema.Definitions = g.defs
	}

	return schema
}

type generator struct {
	tag  string
	defs map[string]*Schema
}

// structToProperties maps exported tagged fields to properties. A field
// without omitempty is required.
func (g *generator) structToProperties(t reflect.Type) (map[string]*Schema, []string) {
	props := make(map[string]*Schema)

	var required []string

	for i := range t.NumField() {
		field := t.Field(i)
		tag := field.Tag.Get(g.tag)

		if tag == "-" || tag == "" || !field.IsExported() {
			continue
		}

		parts := strings.Split(tag, ",")
		name := parts[0]
		isOmitempty := len(parts) > 1 && parts[1] == "omitempty"

		props[name] = g.typeToSchema(field.Type)

		if !isOmitempty {
			required = append(required, name)
		}
	}

	return props, required
}

func (g *generator) typeToSchema(t reflect.Type) *Schema {
	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if t == reflect.TypeOf(time.Duration(0)) {
			return &Schema{Type: "integer", Description: "Duration in nanoseconds"}
		}

		return &Schema{Type: "integer"}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}

	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}

	case reflect.Bool:
		return &Schema{Type: "boolean"}

	case reflect.Slice, reflect.Array:
		return &Schema{
			Type:  "array",
			Items: g.typeToSchema(t.Elem()),
		}

	case reflect.Map:
		return &Schema{
			Type: "object",
			Description: fmt.Sprintf("Map with %s keys and %s values",
				t.Key().Kind().String(), t.Elem().Kind().String()),
		}

	case reflect.Struct:
		if t == reflect.TypeOf(time.Time{}) {
			return &Schema{Type: "string", Description: "ISO 8601 timestamp"}
		}

		defName := t.Name()
		if defName == "" {
			props, required := g.structToProperties(t)

			return &Schema{Type: "object", Properties: props, Required: required}
		}

		if _, exists := g.defs[defName]; !exists {
			// Reserve the name first so recursive types terminate.
			g.defs[defName] = &Schema{}
			props, required := g.structToProperties(t)
			closed := false
			g.defs[defName] = &Schema{Type: "object", Properties: props, Required: required, AdditionalProperties: &closed}
		}

		return &Schema{Ref: "#/definitions/" + defName}

	case reflect.Ptr:
		return g.typeToSchema(t.Elem())

	case reflect.Interface:
		return &Schema{Description: "Any value"}

	default:
		return &Schema{Type: "object"}
	}
}

func writeSchema(name string, schema *Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	path := filepath.Join(outputDir, name+".json")

	return os.WriteFile(path, data, 0o644)
}
