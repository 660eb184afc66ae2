package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerPrefixesAndDebugGate(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(false).WithOutput(&buf)

	l.Debugf("hidden %d\n", 1)
	l.Infof("fetched %d titles\n", 3)
	l.Errorf("viewer failed: %s\n", "boom")

	assert.Equal(t, "[INFO] fetched 3 titles\n[ERROR] viewer failed: boom\n", buf.String())

	buf.Reset()
	l.Debug = true
	l.Debugf("shown %d\n", 2)
	assert.Equal(t, "[DEBUG] shown 2\n", buf.String())
}
