package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventInvokesListenersInOrder(t *testing.T) {
	var e Event[string]
	var got []string
	e.AddListener(func(s string) { got = append(got, "a:"+s) })
	assert.Zero(t, e.AddListener(nil))
	e.AddListener(func(s string) { got = append(got, "b:"+s) })

	e.Invoke("run")

	assert.Equal(t, []string{"a:run", "b:run"}, got)
	assert.Equal(t, 2, e.ListenerCount())

	e.RemoveAllListeners()
	e.Invoke("edit")
	assert.Len(t, got, 2)
}

func TestEventRemoveListener(t *testing.T) {
	var e Event[int]
	sum := 0
	first := e.AddListener(func(v int) { sum += v })
	second := e.AddListener(func(v int) { sum += 10 * v })
	assert.NotEqual(t, first, second)

	assert.True(t, e.RemoveListener(first))
	assert.False(t, e.RemoveListener(first))
	e.Invoke(2)

	assert.Equal(t, 20, sum)
	assert.Equal(t, 1, e.ListenerCount())
}
