package agent

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleBlockedAhead(t *testing.T) {
	p := Simple(rand.New(rand.NewSource(1)))
	seen := map[float64]int{}
	for i := 0; i < 200; i++ {
		turn := p([]float64{10, 100, 10, 100, 100})
		require.Contains(t, []float64{-10, 10}, turn)
		seen[turn]++
	}
	assert.Len(t, seen, 2, "both directions should come up")
}

func TestSimpleRules(t *testing.T) {
	p := Simple(rand.New(rand.NewSource(1)))
	tests := []struct {
		name     string
		readings []float64
		want     float64
	}{
		{"clear", []float64{100, 100, 100, 100, 100}, 0},
		{"left wall", []float64{49, 100, 100, 100, 100}, 5},
		{"right wall", []float64{100, 100, 100, 100, 49}, -5},
		{"both walls prefer left rule", []float64{10, 100, 100, 100, 10}, 5},
		{"threshold is strict", []float64{50, 100, 50, 100, 50}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p(tt.readings))
		})
	}
}

func TestAdvancedRules(t *testing.T) {
	p := Advanced()
	tests := []struct {
		name     string
		readings []float64
		want     float64
	}{
		{"clear and balanced", []float64{100, 100, 100, 100, 100}, 0},
		{"blocked, more room left", []float64{100, 100, 10, 50, 50}, -20},
		{"blocked, more room right", []float64{50, 50, 10, 100, 100}, 20},
		{"blocked, balanced", []float64{50, 50, 10, 50, 50}, 20},
		{"close left wall", []float64{10, 100, 100, 100, 100}, -15},
		{"close right wall", []float64{100, 100, 100, 100, 10}, 15},
		{"proportional", []float64{100, 50, 100, 100, 100}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, p(tt.readings), 1e-12)
		})
	}
}

func TestByName(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, name := range []string{"simple", "advanced"} {
		p, err := ByName(name, rng)
		require.NoError(t, err)
		assert.NotNil(t, p)
	}

	_, err := ByName("neural", rng)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownPolicy))
}
