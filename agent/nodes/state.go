package turnnode

import (
	"errors"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/contract"
	ledgerx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/ledger"
)

var ErrInvalidQuestion = errors.New("question is empty")

// CannotAnswerMessage is the stable terminal answer for out-of-scope
// questions.
const CannotAnswerMessage = "This question can't be answered from your transaction data."

type GraphInput struct {
	Question string
}

type GraphOutput struct {
	Answer string
}

// GraphState flows through the per-turn pipeline. Done short-circuits the
// remaining stages once a terminal decision has been made.
type GraphState struct {
	Question string
	Today    time.Time

	Outcome contractx.DecisionOutcome
	Request *contractx.ToolRequest
	Window  *ledgerx.DateRange
	Result  *contractx.ToolResult

	Answer string
	Done   bool
}

func ValidateQuestion(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return nil, ErrInvalidQuestion
	}
	return &GraphState{
		Question: question,
		Today:    nowFn().UTC(),
	}, nil
}
