package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONExporter(t *testing.T) {
	exporter := NewJSONExporter()
	assert.NotNil(t, exporter)
	assert.NotNil(t, exporter.options)
}

func TestJSONExporter_Export(t *testing.T) {
	tbl := testTable()
	exporter := NewJSONExporter()

	var buf bytes.Buffer
	err := exporter.Export(tbl, &buf)
	require.NoError(t, err)

	var result tableJSON
	err = json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)

	assert.Equal(t, 2, result.NActivations)
	require.Len(t, result.Activations, 2)
	assert.Equal(t, -45.0, *result.Activations[0].X)
	assert.Equal(t, "Superior Temporal Gyrus", result.Activations[0].Region)
	assert.Equal(t, "Thalamus", result.Activations[1].Region)
}

func TestJSONExporter_ExportToString(t *testing.T) {
	tbl := testTable()
	exporter := NewJSONExporter()

	result, err := exporter.ExportToString(tbl)
	require.NoError(t, err)

	var data tableJSON
	err = json.Unmarshal([]byte(result), &data)
	require.NoError(t, err)
	assert.Equal(t, 2, data.NActivations)
}

func TestJSONExporter_WithPrettyPrint(t *testing.T) {
	tbl := testTable()

	exporter1 := NewJSONExporter().WithPrettyPrint(false)
	result1, err := exporter1.ExportToString(tbl)
	require.NoError(t, err)

	exporter2 := NewJSONExporter().WithPrettyPrint(true)
	result2, err := exporter2.ExportToString(tbl)
	require.NoError(t, err)

	assert.Greater(t, len(result2), len(result1))
	assert.Contains(t, result2, "\n  ")
}

func TestJSONExporter_WithMetadata(t *testing.T) {
	tbl := testTable()

	exporter1 := NewJSONExporter().WithMetadata(false)
	result1, err := exporter1.ExportToString(tbl)
	require.NoError(t, err)

	var data1 tableJSON
	err = json.Unmarshal([]byte(result1), &data1)
	require.NoError(t, err)
	assert.Nil(t, data1.Metadata)

	exporter2 := NewJSONExporter().WithMetadata(true)
	result2, err := exporter2.ExportToString(tbl)
	require.NoError(t, err)

	var data2 tableJSON
	err = json.Unmarshal([]byte(result2), &data2)
	require.NoError(t, err)
	require.NotNil(t, data2.Metadata)
	assert.Equal(t, "1", data2.Metadata.Number)
	assert.Equal(t, 1, data2.Metadata.Position)
}

func TestJSONExporter_Columns(t *testing.T) {
	tbl := testTable()

	exporter := NewJSONExporter()
	result, err := exporter.ExportToString(tbl)
	require.NoError(t, err)

	var data tableJSON
	err = json.Unmarshal([]byte(result), &data)
	require.NoError(t, err)
	assert.Equal(t, "Superior Temporal Gyrus", data.Activations[0].Columns["region"])
}

func TestJSONExporter_ContentType(t *testing.T) {
	exporter := NewJSONExporter()
	assert.Equal(t, "application/json", exporter.ContentType())
}

func TestJSONExporter_FileExtension(t *testing.T) {
	exporter := NewJSONExporter()
	assert.Equal(t, ".json", exporter.FileExtension())
}

func TestJSONExporter_NilTable(t *testing.T) {
	exporter := NewJSONExporter()

	var buf bytes.Buffer
	err := exporter.Export(nil, &buf)
	assert.Error(t, err)
}
