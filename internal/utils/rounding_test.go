package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound1(t *testing.T) {
	assert.Equal(t, 37.5, Round1(37.5))
	assert.Equal(t, 61.6, Round1(61.55))
	assert.Equal(t, 0.0, Round1(0.04))
	assert.Equal(t, 100.0, Round1(99.96))
	assert.Equal(t, -2.5, Round1(-2.45))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.0, Round2(10.0))
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, -0.13, Round2(-0.125))
	assert.Equal(t, 29.99, Round2(29.994))
}
