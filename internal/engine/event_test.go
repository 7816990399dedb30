package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventInvokesInOrder(t *testing.T) {
	var e EventWithArg[int]
	var got []int

	e.AddListener(func(v int) { got = append(got, v) })
	e.AddListener(func(v int) { got = append(got, v*10) })
	assert.Zero(t, e.AddListener(nil), "nil callbacks are not registered")

	e.Invoke(3)

	assert.Equal(t, []int{3, 30}, got)
	assert.Equal(t, 2, e.GetListenerCount())
}

func TestEventRemoveListener(t *testing.T) {
	var e EventWithArg[int]
	var got []int

	first := e.AddListener(func(v int) { got = append(got, v) })
	e.AddListener(func(v int) { got = append(got, v*100) })

	e.Invoke(1)
	e.RemoveListener(first)
	e.RemoveListener(first)
	e.Invoke(2)

	assert.Equal(t, []int{1, 100, 200}, got)
}

func TestEventRemoveDuringInvoke(t *testing.T) {
	var e EventWithArg[string]
	calls := 0

	var id ListenerID
	id = e.AddListener(func(string) {
		calls++
		e.RemoveListener(id)
	})
	e.AddListener(func(string) { calls++ })

	e.Invoke("a")
	e.Invoke("b")
	assert.Equal(t, 3, calls, "the self-removing listener runs once, the other twice")

	e.RemoveAllListeners()
	assert.Zero(t, e.GetListenerCount())
}
