package otellog

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelGateSkipsBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(io.Discard)
	defer SetLevel(LevelInfo)

	SetLevel(LevelError)
	Infof("should not appear %d", 1)
	assert.Empty(t, buf.String())

	Errorf("should appear %d", 2)
	assert.Contains(t, buf.String(), "should appear 2")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
}
