package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeBold(t *testing.T) {
	t.Parallel()

	assert.Contains(t, MakeBold("refhist 0.0.1"), "refhist 0.0.1")
}

func TestRenderSuccessMessage(t *testing.T) {
	t.Parallel()

	out := RenderSuccessMessage("Installed merge driver", "*.index files now merge through refhist")

	assert.Contains(t, out, "Installed merge driver")
	assert.Contains(t, out, "*.index files now merge through refhist")
	// MakeBoxed draws a rounded border around the message.
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "╰")
}
