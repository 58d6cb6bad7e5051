package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScriptLines(t *testing.T) {
	assert.Nil(t, ScriptLines(""))
	assert.Nil(t, ScriptLines("\n"))
	assert.Equal(t, []string{"x = 1"}, ScriptLines("x = 1\n"))
	assert.Equal(t, []string{"x = 1", "", "y = 2"}, ScriptLines("x = 1\n\ny = 2"))
}

func TestAppendAndDropScriptLine(t *testing.T) {
	src := AppendScriptLine("", "x = x + 1")
	assert.Equal(t, "x = x + 1\n", src)

	src = AppendScriptLine(src, "y = 0")
	assert.Equal(t, "x = x + 1\ny = 0\n", src)

	src = DropLastScriptLine(src)
	assert.Equal(t, "x = x + 1\n", src)

	src = DropLastScriptLine(src)
	assert.Empty(t, src)
	assert.Empty(t, DropLastScriptLine(src))
}
