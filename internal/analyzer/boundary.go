package analyzer

import (
	"math"
	"sort"
)

// Default boundary detection options
const (
	DefaultMinPercentage = 30
	DefaultMaxPercentage = 70
	DefaultMaxLineGap    = 2
	DefaultMaxCandidates = 3
)

// BoundaryOptions controls how points are grouped and selected
type BoundaryOptions struct {
	MinPercentage int
	MaxPercentage int
	MaxLineGap    int
	MaxCandidates int
}

// DefaultBoundaryOptions returns the default boundary options
func DefaultBoundaryOptions() BoundaryOptions {
	return BoundaryOptions{
		MinPercentage: DefaultMinPercentage,
		MaxPercentage: DefaultMaxPercentage,
		MaxLineGap:    DefaultMaxLineGap,
		MaxCandidates: DefaultMaxCandidates,
	}
}

// ExtractionCandidate is a contiguous line range worth considering for
// extraction into a helper function
type ExtractionCandidate struct {
	StartLine            int
	EndLine              int
	Complexity           int
	ComplexityPercentage int
	Points               []ComplexityPoint
	ConstructKinds       []ConstructKind
}

// Overlaps reports whether the line ranges of c and other intersect
func (c ExtractionCandidate) Overlaps(other ExtractionCandidate) bool {
	return c.StartLine <= other.EndLine && other.StartLine <= c.EndLine
}

// DetectBoundaries groups points into contiguous ranges and selects up to
// MaxCandidates non-overlapping ranges whose share of total lies within
// [MinPercentage, MaxPercentage]. The result is ordered by start line.
func DetectBoundaries(points []ComplexityPoint, total int, opts BoundaryOptions) []ExtractionCandidate {
	if total <= 0 || len(points) == 0 || opts.MaxCandidates <= 0 {
		return nil
	}

	sorted := make([]ComplexityPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Location.StartLine < sorted[j].Location.StartLine
	})

	var groups [][]ComplexityPoint
	groupEnd := 0
	for _, p := range sorted {
		n := len(groups)
		if n > 0 && p.Location.StartLine-groupEnd <= opts.MaxLineGap {
			groups[n-1] = append(groups[n-1], p)
		} else {
			groups = append(groups, []ComplexityPoint{p})
			groupEnd = 0
		}
		if end := pointEnd(p); end > groupEnd {
			groupEnd = end
		}
	}

	var candidates []ExtractionCandidate
	for _, g := range groups {
		c := newCandidate(g, total)
		if c.ComplexityPercentage < opts.MinPercentage || c.ComplexityPercentage > opts.MaxPercentage {
			continue
		}
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Complexity > candidates[j].Complexity
	})

	var selected []ExtractionCandidate
	for _, c := range candidates {
		if len(selected) >= opts.MaxCandidates {
			break
		}
		overlapping := false
		for _, s := range selected {
			if c.Overlaps(s) {
				overlapping = true
				break
			}
		}
		if !overlapping {
			selected = append(selected, c)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].StartLine < selected[j].StartLine
	})
	return selected
}

func newCandidate(group []ComplexityPoint, total int) ExtractionCandidate {
	c := ExtractionCandidate{
		StartLine: group[0].Location.StartLine,
		Points:    group,
	}

	seen := make(map[ConstructKind]bool)
	for _, p := range group {
		c.Complexity += p.Amount
		if end := pointEnd(p); end > c.EndLine {
			c.EndLine = end
		}
		if !seen[p.Kind] {
			seen[p.Kind] = true
			c.ConstructKinds = append(c.ConstructKinds, p.Kind)
		}
	}
	c.ComplexityPercentage = int(math.Round(float64(c.Complexity) / float64(total) * 100))

	return c
}

// pointEnd returns the last line covered by a point
func pointEnd(p ComplexityPoint) int {
	if p.Location.EndLine > p.Location.StartLine {
		return p.Location.EndLine
	}
	return p.Location.StartLine
}
