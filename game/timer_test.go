package game_test

import (
	"testing"

	"github.com/plus3/flapper/game"
	"github.com/stretchr/testify/assert"
)

func TestRepeatingTimer(t *testing.T) {
	timer := game.NewRepeatingTimer(0.125)

	timer.Tick(0.0625)
	assert.False(t, timer.JustFinished())
	assert.Equal(t, 0.5, timer.Fraction())

	timer.Tick(0.0625)
	assert.True(t, timer.JustFinished())
	assert.Equal(t, 1, timer.TimesFinishedThisTick())
	assert.Zero(t, timer.Elapsed())

	timer.Tick(0.4375)
	assert.Equal(t, 3, timer.TimesFinishedThisTick())
	assert.Equal(t, 0.0625, timer.Elapsed())

	timer.Tick(0)
	assert.False(t, timer.JustFinished())
	assert.False(t, timer.Finished(), "repeating timers never finish for good")
}

func TestOneShotTimer(t *testing.T) {
	timer := game.NewTimer(0.125)

	timer.Tick(0.5)
	assert.True(t, timer.JustFinished())
	assert.Equal(t, 1, timer.TimesFinishedThisTick())
	assert.True(t, timer.Finished())
	assert.Equal(t, 1.0, timer.Fraction())

	timer.Tick(0.5)
	assert.False(t, timer.JustFinished())
	assert.True(t, timer.Finished())
}
