// Package similarity provides the cosine-similarity primitives used to
// rank embedding vectors.
package similarity

import (
	"fmt"
	"math"
	"sort"
)

// Candidate is a named vector to be ranked against a base vector. Ranking
// takes a slice rather than a map so that tie ordering is deterministic.
type Candidate struct {
	Name   string
	Vector []float64
}

// Ranked is a candidate's name with its similarity to the base vector.
type Ranked struct {
	Name  string
	Score float64
}

// CosineSimilarity computes dot(a,b) / (|a|*|b|). Vectors of different
// lengths are a caller error. A zero-magnitude vector on either side
// yields 0.0 rather than a division error.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vectors must be the same length: got %d and %d", len(a), len(b))
	}
	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	magA = math.Sqrt(magA)
	magB = math.Sqrt(magB)
	if magA == 0 || magB == 0 {
		return 0, nil
	}
	return dot / (magA * magB), nil
}

// RankAgainst scores every candidate against base and returns them sorted
// by score descending. Equal scores keep their input order.
func RankAgainst(base []float64, candidates []Candidate) ([]Ranked, error) {
	ranked := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		score, err := CosineSimilarity(base, c.Vector)
		if err != nil {
			return nil, fmt.Errorf("candidate %q: %w", c.Name, err)
		}
		ranked = append(ranked, Ranked{Name: c.Name, Score: score})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked, nil
}

// Interpret maps a similarity score onto one of five coarse bands.
func Interpret(score float64) string {
	switch {
	case score >= 0.9:
		return "nearly identical"
	case score >= 0.7:
		return "very similar"
	case score >= 0.5:
		return "somewhat similar"
	case score >= 0.3:
		return "slightly related"
	default:
		return "unrelated"
	}
}
