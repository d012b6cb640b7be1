package turnnode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/contract"
	tracex "github.com/tanpawarit/Finsight-Financial-Assistant/agent/trace"
)

// Dispatch executes the tool request. Exactly one tool invocation happens per
// turn; terminal turns skip this node entirely.
func Dispatch(
	ctx context.Context,
	in *GraphState,
	dispatcher contractx.Dispatcher,
	tr *tracex.Trace,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Done {
		return in, nil
	}
	if in.Request == nil {
		return nil, fmt.Errorf("%w: dispatch reached without a tool request", contractx.ErrValidation)
	}

	result, err := dispatcher.Dispatch(ctx, *in.Request)
	if err != nil {
		return nil, err
	}

	tr.SetToolResult(result)
	in.Result = &result
	return in, nil
}
