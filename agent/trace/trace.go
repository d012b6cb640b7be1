package trace

import (
	"sync"
	"time"

	"github.com/google/uuid"
	contractx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/contract"
	ledgerx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/ledger"
)

// Turn is the full intermediate state of the latest turn. Tool fields stay
// nil on turns that never reached the dispatcher.
type Turn struct {
	TurnID    string    `json:"turn_id"`
	Question  string    `json:"question"`
	StartedAt time.Time `json:"started_at"`

	RouterRaw      string                `json:"router_raw,omitempty"`
	Decision       contractx.DecisionKind `json:"decision,omitempty"`
	ToolRequest    *contractx.ToolRequest `json:"tool_request,omitempty"`
	EffectiveRange *ledgerx.DateRange     `json:"effective_range,omitempty"`
	ToolResult     *contractx.ToolResult  `json:"tool_result,omitempty"`
	AnalysisPrompt string                 `json:"analysis_prompt,omitempty"`
	FinalAnswer    string                 `json:"final_answer,omitempty"`
	Err            string                 `json:"error,omitempty"`
}

// Trace holds the latest turn for inspection. It is scoped to one assistant
// instance, never process-global, and is overwritten at the start of each
// turn. The orchestrator is its only writer; the mutex exists so an inspector
// can snapshot mid-turn while an external model call is in flight.
type Trace struct {
	mu   sync.Mutex
	turn Turn
}

func New() *Trace {
	return &Trace{}
}

// Begin resets every field and opens a fresh turn.
func (t *Trace) Begin(question string, startedAt time.Time) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turn = Turn{
		TurnID:    uuid.NewString(),
		Question:  question,
		StartedAt: startedAt,
	}
	return t.turn.TurnID
}

func (t *Trace) SetDecision(raw string, kind contractx.DecisionKind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turn.RouterRaw = raw
	t.turn.Decision = kind
}

func (t *Trace) SetToolRequest(req contractx.ToolRequest) {
	t.mu.Lock()
	defer t.mu.Unlock()
	copied := req
	copied.Args = copyArgs(req.Args)
	t.turn.ToolRequest = &copied
}

func (t *Trace) SetEffectiveRange(window ledgerx.DateRange) {
	t.mu.Lock()
	defer t.mu.Unlock()
	copied := window
	t.turn.EffectiveRange = &copied
}

func (t *Trace) SetToolResult(result contractx.ToolResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turn.ToolResult = &result
}

func (t *Trace) SetAnalysisPrompt(prompt string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turn.AnalysisPrompt = prompt
}

func (t *Trace) SetFinalAnswer(answer string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turn.FinalAnswer = answer
}

func (t *Trace) SetError(err error) {
	if err == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turn.Err = err.Error()
}

// Snapshot returns a copy of the current turn safe for inspection.
func (t *Trace) Snapshot() Turn {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := t.turn
	if t.turn.ToolRequest != nil {
		req := *t.turn.ToolRequest
		req.Args = copyArgs(t.turn.ToolRequest.Args)
		snap.ToolRequest = &req
	}
	if t.turn.EffectiveRange != nil {
		window := *t.turn.EffectiveRange
		snap.EffectiveRange = &window
	}
	if t.turn.ToolResult != nil {
		result := *t.turn.ToolResult
		if t.turn.ToolResult.Window != nil {
			window := *t.turn.ToolResult.Window
			result.Window = &window
		}
		result.Accounts = append([]ledgerx.Account(nil), t.turn.ToolResult.Accounts...)
		result.Transactions = append([]ledgerx.Transaction(nil), t.turn.ToolResult.Transactions...)
		result.Recurring = append([]ledgerx.RecurringCharge(nil), t.turn.ToolResult.Recurring...)
		snap.ToolResult = &result
	}
	return snap
}

func copyArgs(args map[string]any) map[string]any {
	if args == nil {
		return nil
	}
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	return out
}
