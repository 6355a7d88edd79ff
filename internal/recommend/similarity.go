// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package recommend

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Metric selects a similarity function. It is passed explicitly at every
// call site; there is no package-level default.
type Metric int

const (
	// MetricDistance is the inverted squared Euclidean distance, in (0, 1].
	MetricDistance Metric = iota

	// MetricPearson is the Pearson correlation coefficient, in [-1, 1].
	MetricPearson

	// MetricCosine is cosine similarity over the full rating vectors.
	MetricCosine

	// MetricJaccard is the overlap of rated keys, ignoring rating values.
	MetricJaccard
)

// String returns the canonical lowercase name of the metric.
func (m Metric) String() string {
	switch m {
	case MetricDistance:
		return "distance"
	case MetricPearson:
		return "pearson"
	case MetricCosine:
		return "cosine"
	case MetricJaccard:
		return "jaccard"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}

// ParseMetric converts a metric name to a Metric.
// "euclidean" is accepted as an alias for distance.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "distance", "euclidean":
		return MetricDistance, nil
	case "pearson":
		return MetricPearson, nil
	case "cosine":
		return MetricCosine, nil
	case "jaccard":
		return MetricJaccard, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Metric) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Metric) UnmarshalText(text []byte) error {
	parsed, err := ParseMetric(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Score applies the metric to two rows.
func (m Metric) Score(a, b Ratings) float64 {
	switch m {
	case MetricDistance:
		return Distance(a, b)
	case MetricPearson:
		return Pearson(a, b)
	case MetricCosine:
		return Cosine(a, b)
	case MetricJaccard:
		return Jaccard(a, b)
	default:
		return 0
	}
}

// shared returns the co-rated values of a and b as aligned vectors,
// ordered by key.
func shared(a, b Ratings) (va, vb []float64) {
	for _, k := range a.Keys() {
		if rb, ok := b[k]; ok {
			va = append(va, a[k])
			vb = append(vb, rb)
		}
	}
	return va, vb
}

// Distance returns 1/(1+sum of squared differences) over co-rated keys,
// or 0 when the rows share nothing.
func Distance(a, b Ratings) float64 {
	va, vb := shared(a, b)
	if len(va) == 0 {
		return 0
	}

	diff := floats.SubTo(make([]float64, len(va)), va, vb)
	return 1 / (1 + floats.Dot(diff, diff))
}

// Pearson returns the Pearson correlation over co-rated keys.
// It returns 0 when the rows share nothing or either side has zero variance.
func Pearson(a, b Ratings) float64 {
	va, vb := shared(a, b)
	n := float64(len(va))
	if n == 0 {
		return 0
	}

	sum1 := floats.Sum(va)
	sum2 := floats.Sum(vb)
	sum1Sq := floats.Dot(va, va)
	sum2Sq := floats.Dot(vb, vb)
	pSum := floats.Dot(va, vb)

	num := pSum - (sum1 * sum2 / n)
	v1 := sum1Sq - sum1*sum1/n
	v2 := sum2Sq - sum2*sum2/n
	// A constant row leaves only rounding noise in its variance, of either
	// sign, so each side is compared against the scale of its own squares.
	if zeroVariance(v1, sum1Sq) || zeroVariance(v2, sum2Sq) {
		return 0
	}
	return num / math.Sqrt(v1*v2)
}

// varianceTolerance is the relative size below which a variance term is
// treated as zero.
const varianceTolerance = 1e-12

func zeroVariance(v, sumSq float64) bool {
	return math.IsNaN(v) || v <= varianceTolerance*sumSq
}

// Cosine returns the dot product over co-rated keys divided by the norms of
// the full rows. It returns 0 for no overlap or a zero norm.
func Cosine(a, b Ratings) float64 {
	va, vb := shared(a, b)
	if len(va) == 0 {
		return 0
	}

	normA := floats.Norm(values(a), 2)
	normB := floats.Norm(values(b), 2)
	if normA == 0 || normB == 0 {
		return 0
	}
	return floats.Dot(va, vb) / (normA * normB)
}

// Jaccard returns |shared keys| / |union of keys|.
func Jaccard(a, b Ratings) float64 {
	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// values returns the ratings of r ordered by key.
func values(r Ratings) []float64 {
	out := make([]float64, 0, len(r))
	for _, k := range r.Keys() {
		out = append(out, r[k])
	}
	return out
}

// Similarity scores two rows of m. Both keys must exist.
func Similarity(m Matrix, metric Metric, a, b string) (float64, error) {
	rowA, err := m.Row(a)
	if err != nil {
		return 0, err
	}
	rowB, err := m.Row(b)
	if err != nil {
		return 0, err
	}
	return metric.Score(rowA, rowB), nil
}
