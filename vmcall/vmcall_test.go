package vmcall

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccumulator struct{ a uint8 }

func (f fakeAccumulator) GetA() uint8 { return f.a }

func TestNoopHostIgnoresEverySelector(t *testing.T) {
	h := NoopHost{}
	assert.NoError(t, h.Handle(nil, SelectorPutChar))
	assert.NoError(t, h.Handle(fakeAccumulator{a: 'Z'}, SelectorHalt))
	assert.NoError(t, h.Handle(42, 0xFF))
}

func TestConsolePutCharWritesAccumulatorByte(t *testing.T) {
	var buf bytes.Buffer
	c := &Console{Out: &buf}
	err := c.Handle(fakeAccumulator{a: 'A'}, SelectorPutChar)
	require.NoError(t, err)
	assert.Equal(t, "A", buf.String())
	assert.False(t, c.Halted)
}

func TestConsoleHaltSetsFlag(t *testing.T) {
	c := &Console{}
	err := c.Handle(fakeAccumulator{}, SelectorHalt)
	require.NoError(t, err)
	assert.True(t, c.Halted)
}

func TestConsoleExitCodeReadsAccumulator(t *testing.T) {
	c := &Console{}
	err := c.Handle(fakeAccumulator{a: 7}, SelectorExitCode)
	require.NoError(t, err)
	assert.Equal(t, 7, c.ExitCode)
}

func TestConsoleUnknownSelectorWrapsSentinel(t *testing.T) {
	c := &Console{}
	err := c.Handle(fakeAccumulator{}, 0x99)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownSelector)
}

func TestConsoleRejectsNonAccumulatorState(t *testing.T) {
	c := &Console{}
	err := c.Handle("not-a-cpu", SelectorPutChar)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownSelector)
}

func TestConsolePutCharToleratesNilOut(t *testing.T) {
	c := &Console{}
	err := c.Handle(fakeAccumulator{a: 'x'}, SelectorPutChar)
	assert.NoError(t, err)
}
