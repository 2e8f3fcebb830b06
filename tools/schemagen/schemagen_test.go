package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/autograde/pkg/grader"
	"github.com/Sumatoshi-tech/autograde/pkg/report"
)

func schemaLoader(t *testing.T, name string) gojsonschema.JSONLoader {
	t.Helper()

	raw, err := json.Marshal(generateSchema(targets[name]))
	require.NoError(t, err)

	return gojsonschema.NewBytesLoader(raw)
}

func validateYAML(t *testing.T, doc string) *gojsonschema.Result {
	t.Helper()

	var parsed any
	require.NoError(t, yaml.Unmarshal([]byte(doc), &parsed))

	res, err := gojsonschema.Validate(schemaLoader(t, "case"), gojsonschema.NewGoLoader(parsed))
	require.NoError(t, err)

	return res
}

func TestGenerateSchema_Case(t *testing.T) {
	t.Parallel()

	schema := generateSchema(targets["case"])

	assert.Equal(t, []string{"checks"}, schema.Required)
	require.Contains(t, schema.Definitions, "Check")
	assert.Equal(t, []string{"check"}, schema.Definitions["Check"].Required)
	assert.Equal(t, "boolean", schema.Definitions["Check"].Properties["ascending"].Type)
	assert.Len(t, schema.Definitions["Summary"].Required, 7)
}

func TestCaseSchema_ValidatesCaseFiles(t *testing.T) {
	t.Parallel()

	raw, err := os.ReadFile(filepath.Join("..", "..", "pkg", "grader", "testdata", "temps", "case.yaml"))
	require.NoError(t, err)

	res := validateYAML(t, string(raw))
	assert.True(t, res.Valid(), "%v", res.Errors())

	tests := []struct {
		name string
		doc  string
	}{
		{name: "missing checks", doc: "name: empty\n"},
		{name: "unknown parameter", doc: "checks:\n  - check: legend\n    colour: red\n"},
		{name: "partial summary", doc: "checks:\n  - check: sumstats_for_all_lines\n    summaries:\n      - {min: 1}\n"},
		{name: "wrong type", doc: "checks:\n  - check: axhline_value\n    value: high\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.False(t, validateYAML(t, tt.doc).Valid())
		})
	}
}

func TestReportSchema_ValidatesReports(t *testing.T) {
	t.Parallel()

	results := []grader.Result{
		{Name: "copied", Check: "array_vs_column", Status: "pass", Duration: time.Millisecond},
		{Name: "axvline", Check: "axvline", Status: "fail", Kind: "wrong_shape", Message: "not vertical"},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, "week3", results))

	res, err := gojsonschema.Validate(schemaLoader(t, "report"), gojsonschema.NewBytesLoader(buf.Bytes()))
	require.NoError(t, err)
	assert.True(t, res.Valid(), "%v", res.Errors())

	res, err = gojsonschema.Validate(schemaLoader(t, "report"),
		gojsonschema.NewStringLoader(`{"case": "x", "passed": true, "total": 0, "failed": 0, "results": [{"name": "x"}]}`))
	require.NoError(t, err)
	assert.False(t, res.Valid())
}

func TestWriteSchema(t *testing.T) {
	outputDir = t.TempDir()

	require.NoError(t, writeSchema("case", generateSchema(targets["case"])))

	raw, err := os.ReadFile(filepath.Join(outputDir, "case.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"$schema": "https://json-schema.org/draft-07/schema#"`)
}
