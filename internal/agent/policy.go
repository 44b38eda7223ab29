// Package agent moves sensor-driven cars around a finalized track.
package agent

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrUnknownPolicy is returned by ByName for names it does not know.
var ErrUnknownPolicy = errors.New("unknown steering policy")

// Policy maps five ray readings, ordered left to right as cast by the
// default sensor fan, to a heading change in degrees.
type Policy func(readings []float64) float64

// Simple turns hard when blocked ahead and nudges away from close side
// walls. The direction of the hard turn is drawn from rng.
func Simple(rng *rand.Rand) Policy {
	return func(r []float64) float64 {
		switch {
		case r[2] < 50:
			if rng.Intn(2) == 0 {
				return -10
			}
			return 10
		case r[0] < 50:
			return 5
		case r[4] < 50:
			return -5
		}
		return 0
	}
}

// Advanced steers toward the side with more room, with sharper turns when a
// wall is close ahead or alongside.
func Advanced() Policy {
	return func(r []float64) float64 {
		left := r[0] + r[1]
		right := r[3] + r[4]

		if r[2] < 30 {
			if left > right {
				return -20
			}
			return 20
		}
		if r[0] < 20 || r[4] < 20 {
			if r[0] < r[4] {
				return -15
			}
			return 15
		}
		return (right - left) * 0.02
	}
}

// ByName returns the policy for a config name. rng is only used by the
// simple policy.
func ByName(name string, rng *rand.Rand) (Policy, error) {
	switch name {
	case "simple":
		return Simple(rng), nil
	case "advanced":
		return Advanced(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}
