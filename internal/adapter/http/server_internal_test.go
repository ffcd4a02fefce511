package http

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewServer_WriteTimeout(t *testing.T) {
	s := NewServer(":0", nil, 150*time.Second, slog.Default())
	assert.Equal(t, 150*time.Second, s.httpServer.WriteTimeout)

	s = NewServer(":0", nil, 0, slog.Default())
	assert.Equal(t, DefaultWriteTimeout, s.httpServer.WriteTimeout)
}
