// Package match provides similarity scoring and best-match selection
// between embedded dataset entries.
package match

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch indicates two vectors of different lengths were
// compared. All embeddings compared against each other must come from the
// same model and therefore have equal dimension.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// CosineSimilarity computes the cosine similarity between two equal-length
// vectors: the dot product divided by the product of magnitudes. The result
// is in [-1, 1] for non-degenerate inputs. The denominator is computed as
// sqrt(magA*magB), not sqrt(magA)*sqrt(magB): x/sqrt(x*x) is exactly 1 in
// IEEE doubles, so identical vectors always score exactly 1 and downstream
// identity checks can compare against 1.0 directly.
//
// If either vector has zero magnitude the similarity is defined as 0 rather
// than a non-finite value; a zero vector carries no direction, so it is
// treated as the neutral score instead of poisoning the match with NaN.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}

	if magA == 0 || magB == 0 {
		return 0, nil
	}

	return dot / math.Sqrt(magA*magB), nil
}
