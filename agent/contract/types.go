package contract

import (
	ledgerx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/ledger"
)

// Stage identifies which pipeline stage a model config applies to.
type Stage string

const (
	StageRouter  Stage = "router"
	StageAnalyst Stage = "analyst"
)

// DecisionKind tags the router's verdict. Exactly one variant applies per
// outcome; anything the router cannot interpret is an error, never a default.
type DecisionKind string

const (
	DecisionNeedsTool    DecisionKind = "needs_tool"
	DecisionCannotAnswer DecisionKind = "cannot_answer"
)

// ToolRequest is a structured tool invocation produced by the router. Args is
// the raw argument mapping; the dispatcher validates it against the catalog
// before anything executes.
type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

// DecisionOutcome is the router's interpreted output. Raw carries the model's
// literal text for the session trace; Request is set only for NeedsTool.
type DecisionOutcome struct {
	Kind    DecisionKind `json:"kind"`
	Raw     string       `json:"raw,omitempty"`
	Request *ToolRequest `json:"request,omitempty"`
}

// ToolResult is the normalized output of one dispatched tool call. Zero
// transactions is a valid result, not a failure.
type ToolResult struct {
	Tool         string                    `json:"tool"`
	Window       *ledgerx.DateRange        `json:"window,omitempty"`
	Accounts     []ledgerx.Account         `json:"accounts,omitempty"`
	Transactions []ledgerx.Transaction     `json:"transactions,omitempty"`
	Recurring    []ledgerx.RecurringCharge `json:"recurring,omitempty"`
}

// Empty reports whether the result carries no records at all.
func (r ToolResult) Empty() bool {
	return len(r.Transactions) == 0 && len(r.Accounts) == 0
}
