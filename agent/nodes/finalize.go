package turnnode

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/contract"
	tracex "github.com/tanpawarit/Finsight-Financial-Assistant/agent/trace"
)

// Finalize records the final answer and closes the turn.
func Finalize(in *GraphState, tr *tracex.Trace) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	answer := strings.TrimSpace(in.Answer)
	if answer == "" {
		return GraphOutput{}, fmt.Errorf("%w: pipeline produced no answer", contractx.ErrValidation)
	}

	tr.SetFinalAnswer(answer)
	return GraphOutput{Answer: answer}, nil
}
