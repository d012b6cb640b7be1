package turnnode

import (
	"context"
	"fmt"
	"strings"

	analystx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/analyst"
	contractx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/contract"
	tracex "github.com/tanpawarit/Finsight-Financial-Assistant/agent/trace"
)

// Analyze runs the analysis stage over the dispatched result. The synthesized
// prompt is recorded before the model call so a slow call can be observed
// mid-flight. An empty result is still analyzed; "nothing matched" is an
// answer, not a failure.
func Analyze(
	ctx context.Context,
	in *GraphState,
	analyst contractx.Analyst,
	tr *tracex.Trace,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Done {
		return in, nil
	}
	if in.Result == nil {
		return nil, fmt.Errorf("%w: analyze reached without a tool result", contractx.ErrValidation)
	}

	tr.SetAnalysisPrompt(analystx.BuildPrompt(in.Question, *in.Result))

	answer, err := analyst.Analyze(ctx, in.Question, *in.Result)
	if err != nil {
		return nil, err
	}

	in.Answer = strings.TrimSpace(answer)
	return in, nil
}
