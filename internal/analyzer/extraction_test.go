package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/jsplit/internal/parser"
	"github.com/ludo-technologies/jsplit/internal/scope"
	"github.com/ludo-technologies/jsplit/internal/testutil"
)

// flowFor analyzes the lines [start, end] of the named function
func flowFor(t *testing.T, ast *parser.Node, name string, start, end int) VariableFlowAnalysis {
	t.Helper()
	fn := testutil.FindFunction(t, ast, name)
	table := TrackVariables(fn, scope.Analyze(ast))
	return AnalyzeFlow(ExtractionCandidate{StartLine: start, EndLine: end}, table, fn)
}

func varNames(vars []*VariableInfo) []string {
	out := make([]string, 0, len(vars))
	for _, v := range vars {
		out = append(out, v.Name)
	}
	return out
}

func TestAnalyzeFlow_InputsOutputsInternal(t *testing.T) {
	ast := testutil.ParseJS(t, `function total(items, rate) {
  const factor = rate * 2;
  const picked = [];
  const best = items[0] * factor;
  const label = "x" + best;
  return label;
}`)

	flow := flowFor(t, ast, "total", 4, 5)
	assert.Equal(t, []string{"items", "factor"}, varNames(flow.Inputs))
	assert.Equal(t, []string{"label"}, varNames(flow.Outputs))
	assert.Equal(t, []string{"best"}, varNames(flow.Internal))
	assert.Empty(t, flow.Mutations)
	assert.Empty(t, flow.Closures)
	assert.False(t, flow.HasEarlyReturn)
	assert.False(t, flow.HasSelfReference)

	s := GenerateSuggestion(ExtractionCandidate{StartLine: 4, EndLine: 5, Complexity: 2, ComplexityPercentage: 40}, flow)
	assert.Equal(t, ConfidenceHigh, s.Confidence)
	assert.Empty(t, s.Issues)
	assert.True(t, s.HasSignature())
	assert.Equal(t, "function extractedFunction(items, factor): unknown", s.SuggestedSignature)
}

func TestAnalyzeFlow_Mutations(t *testing.T) {
	ast := testutil.ParseJS(t, `function collect(rows) {
  const out = [];
  let n = 0;
  const cfg = {};
  for (const r of rows) {
    out.push(r);
    n++;
    cfg.last = r;
  }
  return [out, n, cfg];
}`)

	flow := flowFor(t, ast, "collect", 5, 9)
	require.Len(t, flow.Mutations, 3)

	assert.Equal(t, "out", flow.Mutations[0].Variable.Name)
	assert.Equal(t, MutationMethodCall, flow.Mutations[0].Kind)
	assert.Equal(t, 6, flow.Mutations[0].Line)

	assert.Equal(t, "n", flow.Mutations[1].Variable.Name)
	assert.Equal(t, MutationIncrement, flow.Mutations[1].Kind)

	assert.Equal(t, "cfg", flow.Mutations[2].Variable.Name)
	assert.Equal(t, MutationAssignment, flow.Mutations[2].Kind)

	assert.Equal(t, []string{"rows", "out", "n", "cfg"}, varNames(flow.Inputs))

	s := GenerateSuggestion(ExtractionCandidate{StartLine: 5, EndLine: 9}, flow)
	assert.Equal(t, ConfidenceLow, s.Confidence)
	assert.False(t, s.HasSignature())
	require.Len(t, s.Issues, 3)
	assert.Equal(t, IssueMutation, s.Issues[0].Kind)
	assert.Equal(t, "mutates external variable out (method-call)", s.Issues[0].Message)
	// advice is given once per issue kind
	assert.Equal(t, []string{issueAdvice[IssueMutation]}, s.Suggestions)
}

func TestAnalyzeFlow_LocalsAreNotMutations(t *testing.T) {
	ast := testutil.ParseJS(t, `function gather(rows) {
  const acc = {};
  let m = 0;
  for (const r of rows) {
    const tmp = [];
    let local = 0;
    tmp.push(r);
    tmp.k = 1;
    local += r;
    m++;
    acc.last = tmp;
  }
  return [acc, m];
}`)

	flow := flowFor(t, ast, "gather", 4, 12)
	var got []string
	for _, m := range flow.Mutations {
		got = append(got, m.Variable.Name)
		assert.NotEqual(t, "tmp", m.Variable.Name)
		assert.NotEqual(t, "local", m.Variable.Name)
	}
	assert.ElementsMatch(t, []string{"m", "acc"}, got)
	assert.Subset(t, varNames(flow.Internal), []string{"tmp", "local"})
}

func TestAnalyzeFlow_Closures(t *testing.T) {
	ast := testutil.ParseJS(t, `function schedule(tasks) {
  let pending = tasks.length;
  const label = "tasks";
  tasks.forEach((t) => {
    pending = pending - 1;
    log(label);
  });
  return pending;
}`)

	flow := flowFor(t, ast, "schedule", 4, 7)
	require.Len(t, flow.Closures, 1)
	assert.Equal(t, "pending", flow.Closures[0].Variable.Name)
	assert.Equal(t, 4, flow.Closures[0].StartLine)
	assert.Equal(t, 7, flow.Closures[0].EndLine)

	s := GenerateSuggestion(ExtractionCandidate{StartLine: 4, EndLine: 7}, flow)
	assert.Equal(t, ConfidenceLow, s.Confidence)
	assert.Contains(t, s.Suggestions, issueAdvice[IssueClosure])
}

func TestAnalyzeFlow_EarlyReturn(t *testing.T) {
	ast := testutil.ParseJS(t, `function find(list, key) {
  for (const item of list) {
    if (item.key === key) {
      return item;
    }
  }
  return null;
}`)

	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"return well before the end", 2, 6, true},
		{"several returns", 2, 7, true},
		{"return on the last lines", 3, 5, false},
		{"no return", 2, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, flowFor(t, ast, "find", tt.start, tt.end).HasEarlyReturn)
		})
	}
}

func TestAnalyzeFlow_SelfReference(t *testing.T) {
	ast := testutil.ParseJS(t, `class Cart {
  total() {
    let sum = 0;
    for (const i of this.items) {
      sum += i;
    }
    const f = function () { return this; };
    const g = () => this.tax;
    return sum + f() + g();
  }
}`)

	assert.True(t, flowFor(t, ast, "total", 4, 6).HasSelfReference)
	assert.False(t, flowFor(t, ast, "total", 7, 7).HasSelfReference, "function expressions rebind this")
	assert.True(t, flowFor(t, ast, "total", 8, 8).HasSelfReference, "arrows inherit this")

	assert.Equal(t, ReceiverInheriting, FunctionReceiver(&parser.Node{Type: parser.NodeArrowFunction}))
	assert.Equal(t, ReceiverRebinding, FunctionReceiver(&parser.Node{Type: parser.NodeMethodDefinition}))
	assert.Equal(t, ReceiverNone, FunctionReceiver(&parser.Node{Type: parser.NodeBlockStatement}))
	assert.Equal(t, ReceiverNone, FunctionReceiver(nil))
}

func TestIsMutatingMethod(t *testing.T) {
	for _, name := range []string{"push", "splice", "sort", "set", "delete"} {
		assert.True(t, IsMutatingMethod(name), name)
	}
	for _, name := range []string{"map", "filter", "get", "slice", "concat"} {
		assert.False(t, IsMutatingMethod(name), name)
	}
}

func typedVars(names ...string) []*VariableInfo {
	out := make([]*VariableInfo, 0, len(names))
	for _, n := range names {
		out = append(out, &VariableInfo{Name: n})
	}
	return out
}

func TestGenerateSuggestion_Confidence(t *testing.T) {
	c := ExtractionCandidate{StartLine: 3, EndLine: 9}

	tests := []struct {
		name       string
		flow       VariableFlowAnalysis
		confidence Confidence
		issues     []IssueKind
		signature  bool
	}{
		{"clean", VariableFlowAnalysis{Inputs: typedVars("a")}, ConfidenceHigh, nil, true},
		{"four inputs", VariableFlowAnalysis{Inputs: typedVars("a", "b", "c", "d")}, ConfidenceMedium, nil, true},
		{"two outputs", VariableFlowAnalysis{Outputs: typedVars("x", "y")}, ConfidenceMedium, nil, true},
		{"early return", VariableFlowAnalysis{HasEarlyReturn: true}, ConfidenceMedium, []IssueKind{IssueEarlyReturn}, false},
		{
			"six inputs",
			VariableFlowAnalysis{Inputs: typedVars("a", "b", "c", "d", "e", "f")},
			ConfidenceLow, []IssueKind{IssueTooManyParams}, false,
		},
		{
			"three outputs",
			VariableFlowAnalysis{Outputs: typedVars("x", "y", "z")},
			ConfidenceLow, []IssueKind{IssueMultipleOutputs}, false,
		},
		{"self reference", VariableFlowAnalysis{HasSelfReference: true}, ConfidenceHigh, []IssueKind{IssueSelfReference}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := GenerateSuggestion(c, tt.flow)
			assert.Equal(t, tt.confidence, s.Confidence)

			var got []IssueKind
			for _, issue := range s.Issues {
				got = append(got, issue.Kind)
				assert.Equal(t, 3, issue.Line)
			}
			assert.Equal(t, tt.issues, got)
			assert.Equal(t, tt.signature, s.HasSignature())
			assert.Len(t, s.Suggestions, len(tt.issues))
		})
	}
}

func TestSignature(t *testing.T) {
	tests := []struct {
		name    string
		inputs  []TypedVariable
		outputs []TypedVariable
		want    string
	}{
		{"no inputs or outputs", nil, nil, "function extractedFunction(): void"},
		{
			"typed and untyped inputs",
			[]TypedVariable{{Name: "a", Type: "number"}, {Name: "b"}},
			nil,
			"function extractedFunction(a: number, b): void",
		},
		{
			"single output",
			[]TypedVariable{{Name: "items", Type: "Item[]"}},
			[]TypedVariable{{Name: "total", Type: "number"}},
			"function extractedFunction(items: Item[]): number",
		},
		{
			"several outputs",
			nil,
			[]TypedVariable{{Name: "x", Type: "number"}, {Name: "y"}},
			"function extractedFunction(): { x: number; y: unknown }",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Signature(tt.inputs, tt.outputs))
		})
	}
}

func TestExtractionOptions_Triggers(t *testing.T) {
	opts := DefaultExtractionOptions()
	assert.False(t, opts.Triggers(22))
	assert.True(t, opts.Triggers(23))

	opts.Multiplier = 1
	assert.False(t, opts.Triggers(15))
	assert.True(t, opts.Triggers(16))
}

const processOrderSource = `function processOrder(order, items) {
  const validated = [];
  for (const item of items) {
    if (!item) {
      continue;
    }
    if (item.qty > 0 && item.price > 0) {
      validated.push(item);
    }
  }
  let total = 0;
  let count = 0;
  const stats = {};
  for (const item of validated) {
    if (item.discount) {
      total += item.price * 0.9;
    } else {
      total += item.price;
    }
    count++;
    stats.last = item;
  }
  log(total);
  log(count);
  for (const line of order.lines) {
    log(line);
  }
  return { total, count, stats };
}`

func TestAnalyzeFunction_SeparateBlocks(t *testing.T) {
	ast := testutil.ParseJS(t, processOrderSource)
	fn := testutil.FindFunction(t, ast, "processOrder")

	var result FunctionResult
	for _, r := range ScoreCombined(ast) {
		if r.Name == "processOrder" {
			result = r
		}
	}
	require.Equal(t, "processOrder", result.Name)
	assert.Equal(t, 11, result.Cognitive)

	opts := DefaultExtractionOptions()
	opts.Threshold = 5
	suggestions := AnalyzeFunction(result, TrackVariables(fn, scope.Analyze(ast)), opts)

	// the logging loop holds too small a share to be proposed
	require.Len(t, suggestions, 2)
	validate, accumulate := suggestions[0], suggestions[1]
	first := ExtractionCandidate{StartLine: validate.StartLine, EndLine: validate.EndLine}
	second := ExtractionCandidate{StartLine: accumulate.StartLine, EndLine: accumulate.EndLine}
	assert.False(t, first.Overlaps(second))

	assert.Equal(t, 3, validate.StartLine)
	assert.Equal(t, 10, validate.EndLine)
	assert.Equal(t, 6, validate.Complexity)
	assert.Equal(t, 14, accumulate.StartLine)
	assert.Equal(t, 22, accumulate.EndLine)
	assert.Equal(t, 4, accumulate.Complexity)

	var mutated []string
	for _, issue := range accumulate.Issues {
		if issue.Kind == IssueMutation {
			assert.GreaterOrEqual(t, issue.Line, accumulate.StartLine)
			assert.LessOrEqual(t, issue.Line, accumulate.EndLine)
			mutated = append(mutated, issue.Message)
		}
	}
	assert.Contains(t, mutated, "mutates external variable total (assignment)")
	assert.Contains(t, mutated, "mutates external variable count (increment)")
	assert.Contains(t, mutated, "mutates external variable stats (assignment)")
	assert.Equal(t, ConfidenceLow, accumulate.Confidence)

	require.NotEmpty(t, validate.Issues)
	assert.Equal(t, "mutates external variable validated (method-call)", validate.Issues[0].Message)
	assert.Equal(t, ConfidenceLow, validate.Confidence)
}

func TestAnalyzeFunction_BelowTrigger(t *testing.T) {
	r := scoreFunction(t, nestedLoopSource, "process")
	assert.Nil(t, AnalyzeFunction(r, nil, DefaultExtractionOptions()))
}
