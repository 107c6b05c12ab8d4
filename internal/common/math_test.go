package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbs(t *testing.T) {
	assert.Equal(t, 5, Abs(5))
	assert.Equal(t, 5, Abs(-5))
	assert.Equal(t, 0, Abs(0))
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi int
		expected  int
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -3, 0, 10, 0},
		{"above", 42, 0, 10, 10},
		{"at bounds", 10, 0, 10, 10},
		{"degenerate range", 7, 3, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clamp(tt.v, tt.lo, tt.hi))
		})
	}
}

func TestManhattanDistance(t *testing.T) {
	tests := []struct {
		name     string
		x1, y1   int
		x2, y2   int
		expected int
	}{
		{"same position", 5, 5, 5, 5, 0},
		{"horizontal", 0, 0, 5, 0, 5},
		{"vertical", 0, 0, 0, 5, 5},
		{"diagonal", 0, 0, 3, 4, 7},
		{"negative coords", -2, -3, 1, 2, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ManhattanDistance(tt.x1, tt.y1, tt.x2, tt.y2))
			assert.Equal(t, tt.expected, ManhattanDistance(tt.x2, tt.y2, tt.x1, tt.y1))
		})
	}
}
