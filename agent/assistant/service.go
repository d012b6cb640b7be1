package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/contract"
	turnnode "github.com/tanpawarit/Finsight-Financial-Assistant/agent/nodes"
	tracex "github.com/tanpawarit/Finsight-Financial-Assistant/agent/trace"
)

var ErrInvalidQuestion = turnnode.ErrInvalidQuestion

// Assistant sequences the per-turn pipeline: decide, dispatch, analyze. It
// exclusively owns its session trace; stages hand values back through the
// graph state and never write the trace themselves. Turns are strictly
// sequential; an Assistant serves one conversation at a time.
type Assistant struct {
	router     contractx.Router
	dispatcher contractx.Dispatcher
	analyst    contractx.Analyst
	trace      *tracex.Trace

	graphRunner compose.Runnable[turnnode.GraphInput, turnnode.GraphOutput]

	now func() time.Time
}

func New(
	router contractx.Router,
	dispatcher contractx.Dispatcher,
	analyst contractx.Analyst,
) (*Assistant, error) {
	if router == nil {
		return nil, errors.New("router is required")
	}
	if dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	if analyst == nil {
		return nil, errors.New("analyst is required")
	}

	a := &Assistant{
		router:     router,
		dispatcher: dispatcher,
		analyst:    analyst,
		trace:      tracex.New(),
		now:        time.Now,
	}

	graphRunner, err := a.compileTurnGraph(context.Background())
	if err != nil {
		return nil, err
	}
	a.graphRunner = graphRunner

	return a, nil
}

// Answer runs one full turn. Pipeline failures never escape as raw errors:
// each is recorded in the trace and converted to a stable user-facing
// message. Only an empty question is the caller's error.
func (a *Assistant) Answer(ctx context.Context, question string) (string, error) {
	q := strings.TrimSpace(question)
	a.trace.Begin(q, a.now().UTC())

	if q == "" {
		a.trace.SetError(ErrInvalidQuestion)
		return "", ErrInvalidQuestion
	}

	out, err := a.graphRunner.Invoke(ctx, turnnode.GraphInput{Question: q})
	if err != nil {
		a.trace.SetError(err)
		msg := userFacingMessage(err)
		a.trace.SetFinalAnswer(msg)
		log.Warn().Err(err).Msg("turn failed")
		return msg, nil
	}

	snap := a.trace.Snapshot()
	log.Debug().
		Str("turn_id", snap.TurnID).
		Str("decision", string(snap.Decision)).
		Int("answer_len", len(out.Answer)).
		Msg("turn completed")

	return out.Answer, nil
}

// Trace returns a snapshot of the latest turn's intermediate state.
func (a *Assistant) Trace() tracex.Turn {
	return a.trace.Snapshot()
}

func userFacingMessage(err error) string {
	switch {
	case errors.Is(err, contractx.ErrMalformedDecision):
		return "I couldn't determine how to answer this from your transaction data. Try rephrasing or specifying a time period."
	case errors.Is(err, contractx.ErrUnknownTool), errors.Is(err, contractx.ErrInvalidArguments):
		return "I couldn't fetch your transactions for that request. Try restating the question with a clear date range."
	case errors.Is(err, contractx.ErrTransactionSource):
		return "Your transaction data is unavailable right now. Please try again shortly."
	case errors.Is(err, contractx.ErrModelInvoke), errors.Is(err, contractx.ErrEmptyAnswer):
		return "The assistant is temporarily unavailable. Please try again."
	default:
		return "Something went wrong while answering that question."
	}
}
