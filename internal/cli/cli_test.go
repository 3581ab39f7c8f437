package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	cases := []struct {
		line   string
		dx, dy int
		ok     bool
	}{
		{"w", 0, -1, true},
		{"s", 0, 1, true},
		{"a", -1, 0, true},
		{"d", 1, 0, true},
		{"wd", 1, -1, true},
		{"sa", -1, 1, true},
		{"x", 0, 0, true},
		{"stop", 0, 0, true},
		{"", 0, 0, false},
		{"up", 0, 0, false},
	}
	for _, c := range cases {
		dx, dy, ok := parseDirection(c.line)
		assert.Equal(t, c.ok, ok, "line %q", c.line)
		if c.ok {
			assert.Equal(t, c.dx, dx, "line %q", c.line)
			assert.Equal(t, c.dy, dy, "line %q", c.line)
		}
	}
}

func TestWebsocketURL(t *testing.T) {
	cases := map[string]string{
		"http://localhost:8765": "ws://localhost:8765/ws",
		"https://game.test":     "wss://game.test/ws",
		"ws://game.test:9000":   "ws://game.test:9000/ws",
	}
	for in, want := range cases {
		c := &Config{ServerURL: in}
		got, err := c.WebsocketURL()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	c := &Config{ServerURL: "ftp://nope"}
	_, err := c.WebsocketURL()
	assert.Error(t, err)
}
