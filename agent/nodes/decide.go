package turnnode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/contract"
	tracex "github.com/tanpawarit/Finsight-Financial-Assistant/agent/trace"
)

// Decide runs the decision stage and records its raw output in the trace as
// soon as it returns. A cannot-answer verdict terminates the turn here.
func Decide(
	ctx context.Context,
	in *GraphState,
	router contractx.Router,
	tr *tracex.Trace,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	outcome, err := router.Decide(ctx, in.Question)
	if err != nil {
		return nil, err
	}

	tr.SetDecision(outcome.Raw, outcome.Kind)
	in.Outcome = outcome

	switch outcome.Kind {
	case contractx.DecisionCannotAnswer:
		in.Answer = CannotAnswerMessage
		in.Done = true
	case contractx.DecisionNeedsTool:
		if outcome.Request == nil {
			return nil, fmt.Errorf("%w: needs-tool outcome without a request", contractx.ErrMalformedDecision)
		}
		in.Request = outcome.Request
		tr.SetToolRequest(*outcome.Request)
	default:
		return nil, fmt.Errorf("%w: unexpected decision kind %q", contractx.ErrMalformedDecision, outcome.Kind)
	}

	return in, nil
}
