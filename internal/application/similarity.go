package application

import (
	"fmt"
	"math"
)

// CosineSimilarity returns the cosine of the angle between a and b clamped to
// [0, 1]. Zero vectors have similarity 0.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vectors must have the same length: %d != %d", len(a), len(b))
	}

	var dot, aMagnitude, bMagnitude float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		aMagnitude += x * x
		bMagnitude += y * y
	}

	if aMagnitude == 0 || bMagnitude == 0 {
		return 0, nil
	}

	score := dot / (math.Sqrt(aMagnitude) * math.Sqrt(bMagnitude))
	switch {
	case score < 0:
		return 0, nil
	case score > 1:
		return 1, nil
	default:
		return score, nil
	}
}
