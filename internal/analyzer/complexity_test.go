package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/jsplit/internal/config"
	"github.com/ludo-technologies/jsplit/internal/testutil"
)

const handleSource = `function handle(order, items) {
  if (!order) {
    throw new Error("missing");
  }
  let total = 0;
  const discount = order.discount;
  for (const item of items) {
    if (item.price > discount) {
      total += item.price;
    }
  }
  const tax = total * 0.2;
  log(tax);
  log(total);
  if (tax > 100) {
    notify(order);
  }
  return total + tax;
}`

const deepSource = `function deep(a, b, c, d, e) {
  if (a) {
    if (b) {
      if (c) {
        if (d && e && a && b && c) {
          return 1;
        }
      }
    }
  }
  return 0;
}`

func lowTriggerConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Complexity.CognitiveThreshold = 2
	cfg.Extraction.Enabled = true
	cfg.Tips.Enabled = true
	return cfg
}

func TestComplexityAnalyzer_Defaults(t *testing.T) {
	reports, err := NewComplexityAnalyzer(nil).AnalyzeFile(testutil.ParseJS(t, nestedLoopSource))
	require.NoError(t, err)
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Equal(t, "process", r.Name)
	assert.Equal(t, 1, r.StartLine)
	assert.Equal(t, 9, r.EndLine)
	assert.Equal(t, 9, r.LineCount())
	assert.Equal(t, 2, r.MaxNesting)
	assert.Empty(t, r.Suggestions, "below the extraction trigger")
	assert.Empty(t, r.Tips)
	assert.Equal(t, "Function: process, Cyclomatic: 4, Cognitive: 6", r.String())
}

func TestComplexityAnalyzer_Extraction(t *testing.T) {
	reports, err := NewComplexityAnalyzer(lowTriggerConfig()).AnalyzeFile(testutil.ParseJS(t, handleSource))
	require.NoError(t, err)
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Equal(t, 5, r.Cyclomatic)
	assert.Equal(t, 5, r.Cognitive)
	require.Len(t, r.Suggestions, 1)

	s := r.Suggestions[0]
	assert.Equal(t, 7, s.StartLine)
	assert.Equal(t, 11, s.EndLine)
	assert.Equal(t, 3, s.Complexity)
	assert.Equal(t, 60, s.ComplexityPercentage)
	assert.Equal(t, []ConstructKind{KindForOf, KindIf}, s.ConstructKinds)

	var inputs []string
	for _, in := range s.Inputs {
		inputs = append(inputs, in.Name)
	}
	assert.Equal(t, []string{"items", "total", "discount"}, inputs)
	assert.Empty(t, s.Outputs)

	assert.Equal(t, ConfidenceLow, s.Confidence)
	require.Len(t, s.Issues, 1)
	assert.Equal(t, "mutates external variable total (assignment)", s.Issues[0].Message)
	assert.Equal(t, 9, s.Issues[0].Line)
	assert.False(t, s.HasSignature())
}

func TestComplexityAnalyzer_ExtractionDisabled(t *testing.T) {
	cfg := lowTriggerConfig()
	cfg.Extraction.Enabled = false
	cfg.Tips.Enabled = false

	reports, err := NewComplexityAnalyzer(cfg).AnalyzeFile(testutil.ParseJS(t, handleSource+"\n"+deepSource))
	require.NoError(t, err)
	require.Len(t, reports, 2)
	for _, r := range reports {
		assert.Nil(t, r.Suggestions, r.Name)
		assert.Nil(t, r.Tips, r.Name)
	}
}

func TestComplexityAnalyzer_NilAST(t *testing.T) {
	_, err := NewComplexityAnalyzer(nil).AnalyzeFile(nil)
	assert.Error(t, err)
}

func TestTips(t *testing.T) {
	r := scoreFunction(t, deepSource, "deep")
	tips := Tips(r, DefaultTipOptions())
	require.Len(t, tips, 2)
	assert.Equal(t, "Nesting reaches level 3; use guard clauses or early returns to flatten it", tips[0])
	assert.Equal(t, "A condition chains 4 logical operators; name its parts with intermediate variables", tips[1])

	assert.Empty(t, Tips(r, TipOptions{}), "zero thresholds disable tips")
	assert.Empty(t, Tips(scoreFunction(t, nestedLoopSource, "process"), DefaultTipOptions()))
}

func TestLongestLogicalChain(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   int
	}{
		{"none", "function f(a) { return a; }", 0},
		{"mixed operators", "function f(a, b, c) { return (a && (b || c)) ?? a; }", 3},
		{"separate conditions", "function f(a, b) { if (a && b) {} if (a || b || a) {} }", 2},
		{"nested function ignored", "function f(a) { return () => a && a && a && a; }", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := testutil.FindFunction(t, testutil.ParseJS(t, tt.source), "f")
			assert.Equal(t, tt.want, LongestLogicalChain(fn))
		})
	}
	assert.Zero(t, LongestLogicalChain(nil))
}
