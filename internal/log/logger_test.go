package log_test

import (
	"bytes"
	"testing"

	"github.com/Makepad-fr/stock/internal/log"
	"github.com/stretchr/testify/assert"
)

type recorder struct{ lines [][]interface{} }

func (r *recorder) Log(items ...interface{}) { r.lines = append(r.lines, items) }

func TestContextLogger_Prefixes(t *testing.T) {
	r := &recorder{}
	l := log.NewContext(r, "server:")
	l.Log("listening", ":8080")

	assert.Equal(t, [][]interface{}{{"server:", "listening", ":8080"}}, r.lines)
}

func TestNewContext_NilDestination(t *testing.T) {
	l := log.NewContext(nil, "x")
	assert.Equal(t, log.Discard, l)
	assert.NotPanics(t, func() { l.Log("dropped") })
}

func TestWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	log.NewWriter(&buf).Log("session", "started")
	assert.Contains(t, buf.String(), "session started\n")
}

func TestDump(t *testing.T) {
	r := &recorder{}
	log.Dump(r, "state", []string{"chleb"})
	if assert.Len(t, r.lines, 1) {
		assert.Equal(t, "state", r.lines[0][0])
		assert.Contains(t, r.lines[0][1], "chleb")
	}
	log.Dump(nil, "ignored", 1)
}
