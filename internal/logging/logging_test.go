package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tryfix/log"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"trace":   log.Level("TRACE"),
		"DEBUG":   log.Level("DEBUG"),
		" info ":  log.Level("INFO"),
		"warning": log.Level("WARN"),
		"warn":    log.Level("WARN"),
		"error":   log.Level("ERROR"),
		"":        log.Level("INFO"),
		"verbose": log.Level("INFO"),
	}

	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestNew(t *testing.T) {
	assert.NotNil(t, New(DefaultLevel))
}
