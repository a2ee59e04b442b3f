package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunEncodings(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	encodingsFormat = "table"

	err := runEncodings(cmd, []string{"FLAG{"})
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Encoding")
	assert.Contains(t, output, "Search bytes (hex)")
	// the ASCII row searches the prefix itself
	assert.Contains(t, output, "464c41477b")
	assert.Contains(t, output, "XOR_255")
	assert.Contains(t, output, "raw_binary")
}

func TestRunEncodingsJSON(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	encodingsFormat = "json"
	defer func() { encodingsFormat = "table" }()

	err := runEncodings(cmd, []string{"FLAG{"})
	require.NoError(t, err)

	var entries []encodingEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 270)

	assert.Equal(t, "ASCII", entries[0].Label)
	assert.Equal(t, "464c41477b", entries[0].Search)
	assert.Equal(t, 5, entries[0].Length)
	assert.Equal(t, "base64", entries[1].Label)
}

func TestRunEncodingsUnknownFormat(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	encodingsFormat = "xml"
	defer func() { encodingsFormat = "table" }()

	err := runEncodings(cmd, []string{"FLAG{"})
	assert.Error(t, err)
}

func TestRunEncodingsEmptyPattern(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	err := runEncodings(cmd, []string{""})
	assert.Error(t, err)
}
