package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowBuilderOptions(t *testing.T) {
	w := &engineWindow{title: "Solaris", width: 1280, height: 720}

	for _, opt := range []WindowBuilderOption{
		WithTitle(""),
		WithSize(0, 900),
		WithMinSize(640, 360),
		WithMaxSize(-1, -1),
	} {
		opt(w)
	}

	assert.Equal(t, "Solaris", w.title, "empty title keeps the default")
	assert.Equal(t, 1280, w.width)
	assert.Equal(t, 900, w.height)
	assert.Equal(t, 640, w.minWidth)
	assert.Equal(t, 360, w.minHeight)
	assert.Equal(t, -1, w.maxWidth)

	WithTitle("Sol")(w)
	assert.Equal(t, "Sol", w.title)
}
