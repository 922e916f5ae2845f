package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDumpMarksUnsetVariables(t *testing.T) {
	os.Unsetenv("OTEL_SERVICE_NAME")

	f, err := os.CreateTemp(t.TempDir(), "dump")
	assert.NoError(t, err)
	defer f.Close()

	dump(f, []string{"OTEL_SERVICE_NAME"})

	f.Seek(0, 0)
	var buf bytes.Buffer
	buf.ReadFrom(f)
	assert.Equal(t, "OTEL_SERVICE_NAME=(unset)\n", buf.String())
}

func TestDumpPrintsResolvedValue(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "checkout")

	f, err := os.CreateTemp(t.TempDir(), "dump")
	assert.NoError(t, err)
	defer f.Close()

	dump(f, []string{"OTEL_SERVICE_NAME"})

	f.Seek(0, 0)
	var buf bytes.Buffer
	buf.ReadFrom(f)
	assert.True(t, strings.Contains(buf.String(), "OTEL_SERVICE_NAME=checkout"))
}
