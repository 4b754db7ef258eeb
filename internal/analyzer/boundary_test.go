package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/jsplit/internal/parser"
)

func point(kind ConstructKind, amount, start, end int) ComplexityPoint {
	return ComplexityPoint{
		Kind:     kind,
		Amount:   amount,
		Location: parser.Location{StartLine: start, EndLine: end},
	}
}

func TestDetectBoundaries_GroupsAndFilters(t *testing.T) {
	points := []ComplexityPoint{
		point(KindIf, 1, 40, 40),
		point(KindFor, 1, 10, 10),
		point(KindIf, 2, 11, 11),
		point(KindWhile, 3, 20, 20),
		point(KindIf, 1, 21, 21),
	}

	got := DetectBoundaries(points, 8, DefaultBoundaryOptions())
	require.Len(t, got, 2)

	assert.Equal(t, 10, got[0].StartLine)
	assert.Equal(t, 11, got[0].EndLine)
	assert.Equal(t, 3, got[0].Complexity)
	assert.Equal(t, 38, got[0].ComplexityPercentage)
	assert.Equal(t, []ConstructKind{KindFor, KindIf}, got[0].ConstructKinds)

	assert.Equal(t, 20, got[1].StartLine)
	assert.Equal(t, 21, got[1].EndLine)
	assert.Equal(t, 4, got[1].Complexity)
	assert.Equal(t, 50, got[1].ComplexityPercentage)
}

func TestDetectBoundaries_GapMeasuredFromRangeEnd(t *testing.T) {
	points := []ComplexityPoint{
		point(KindFor, 1, 10, 15),
		point(KindIf, 2, 12, 13),
		point(KindIf, 1, 17, 17), // 2 lines after the loop ends
		point(KindIf, 1, 30, 30),
		point(KindIf, 1, 40, 40),
	}

	got := DetectBoundaries(points, 6, DefaultBoundaryOptions())
	require.Len(t, got, 1)
	assert.Equal(t, 10, got[0].StartLine)
	assert.Equal(t, 17, got[0].EndLine)
	assert.Equal(t, 4, got[0].Complexity)
	assert.Equal(t, 67, got[0].ComplexityPercentage)
	assert.Len(t, got[0].Points, 3)
}

func TestDetectBoundaries_CandidateLimit(t *testing.T) {
	points := []ComplexityPoint{
		point(KindIf, 3, 1, 1),
		point(KindIf, 4, 10, 10),
		point(KindIf, 3, 20, 20),
	}
	opts := BoundaryOptions{MinPercentage: 0, MaxPercentage: 100, MaxLineGap: 2, MaxCandidates: 2}

	got := DetectBoundaries(points, 10, opts)
	require.Len(t, got, 2)
	// the two most complex ranges, back in source order
	assert.Equal(t, 1, got[0].StartLine)
	assert.Equal(t, 10, got[1].StartLine)

	opts.MaxCandidates = 1
	got = DetectBoundaries(points, 10, opts)
	require.Len(t, got, 1)
	assert.Equal(t, 10, got[0].StartLine)
}

func TestDetectBoundaries_Empty(t *testing.T) {
	points := []ComplexityPoint{point(KindIf, 1, 1, 1)}
	opts := DefaultBoundaryOptions()

	assert.Nil(t, DetectBoundaries(points, 0, opts))
	assert.Nil(t, DetectBoundaries(points, -3, opts))
	assert.Nil(t, DetectBoundaries(nil, 5, opts))

	opts.MaxCandidates = 0
	assert.Nil(t, DetectBoundaries(points, 2, opts))

	// a single range holding everything is above the maximum share
	assert.Empty(t, DetectBoundaries(points, 1, DefaultBoundaryOptions()))
}

func TestExtractionCandidate_Overlaps(t *testing.T) {
	a := ExtractionCandidate{StartLine: 10, EndLine: 20}
	assert.True(t, a.Overlaps(ExtractionCandidate{StartLine: 20, EndLine: 25}))
	assert.True(t, a.Overlaps(ExtractionCandidate{StartLine: 12, EndLine: 14}))
	assert.True(t, a.Overlaps(ExtractionCandidate{StartLine: 5, EndLine: 10}))
	assert.False(t, a.Overlaps(ExtractionCandidate{StartLine: 21, EndLine: 30}))
	assert.False(t, a.Overlaps(ExtractionCandidate{StartLine: 1, EndLine: 9}))
}
