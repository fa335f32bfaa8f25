package vectorindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{name: "identical unit vectors", a: []float32{1, 0, 0}, b: []float32{1, 0, 0}, expected: 1},
		{name: "orthogonal unit vectors", a: []float32{1, 0, 0}, b: []float32{0, 1, 0}, expected: 0},
		{name: "opposite vectors", a: []float32{1, 0}, b: []float32{-1, 0}, expected: -1},
		{name: "zero vector left", a: []float32{0, 0, 0}, b: []float32{1, 2, 3}, expected: 0},
		{name: "zero vector right", a: []float32{1, 2, 3}, b: []float32{0, 0, 0}, expected: 0},
		{name: "both zero", a: []float32{0, 0}, b: []float32{0, 0}, expected: 0},
		{name: "scaling invariant", a: []float32{2, 0}, b: []float32{5, 0}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CosineSimilarity(tt.a, tt.b), 1e-6)
		})
	}
}

func TestCosineSimilarity_Bounded(t *testing.T) {
	pairs := [][2][]float32{
		{{1, 2, 3}, {4, 5, 6}},
		{{-1, 2, -3}, {3, -2, 1}},
		{{0.001, 0}, {1000, 1}},
	}

	for _, pair := range pairs {
		score := CosineSimilarity(pair[0], pair[1])
		assert.GreaterOrEqual(t, score, float32(-1.0000001))
		assert.LessOrEqual(t, score, float32(1.0000001))
	}
}
