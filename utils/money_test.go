package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.004, 1.0},
		{1.005, 1.01},
		{2.675, 2.68}, // float artifact case; naive round(x*100)/100 gives 2.67
		{-1.005, -1.01},
		{249.99999999999997, 250},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Round2(tt.in), "Round2(%v)", tt.in)
	}
}
