package turnnode

import (
	"testing"
	"time"

	contractx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/contract"
	toolx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/tool"
	tracex "github.com/tanpawarit/Finsight-Financial-Assistant/agent/trace"
)

func transactionsState(question string, args map[string]any) *GraphState {
	return &GraphState{
		Question: question,
		Today:    time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC),
		Request:  &contractx.ToolRequest{Tool: toolx.ToolGetTransactions, Args: args},
	}
}

func TestResolveWindowQuestionRangeWinsOverArgs(t *testing.T) {
	t.Parallel()

	in := transactionsState("restaurants last month", map[string]any{
		"start_date": "2025-01-01",
		"end_date":   "2025-12-31",
	})
	tr := tracex.New()
	tr.Begin(in.Question, in.Today)

	out, err := ResolveWindow(in, tr)
	if err != nil {
		t.Fatalf("ResolveWindow() error = %v", err)
	}
	if out.Request.Args["start_date"] != "2025-10-01" || out.Request.Args["end_date"] != "2025-10-31" {
		t.Fatalf("question range must override router args, got %+v", out.Request.Args)
	}
	if out.Window == nil || out.Window.Kind != "last_month" {
		t.Fatalf("unexpected window: %+v", out.Window)
	}
	if turn := tr.Snapshot(); turn.EffectiveRange == nil || turn.EffectiveRange.Kind != "last_month" {
		t.Fatalf("effective range not recorded: %+v", turn.EffectiveRange)
	}
}

func TestResolveWindowKeepsRouterDates(t *testing.T) {
	t.Parallel()

	in := transactionsState("show spending for that period", map[string]any{
		"start_date": "2025-09-01",
		"end_date":   "2025-09-30",
	})
	tr := tracex.New()

	out, err := ResolveWindow(in, tr)
	if err != nil {
		t.Fatalf("ResolveWindow() error = %v", err)
	}
	if out.Request.Args["start_date"] != "2025-09-01" || out.Request.Args["end_date"] != "2025-09-30" {
		t.Fatalf("router dates must survive when no range is in the question, got %+v", out.Request.Args)
	}
}

func TestResolveWindowDefaultsToThirtyDays(t *testing.T) {
	t.Parallel()

	in := transactionsState("how much on groceries?", nil)
	tr := tracex.New()

	out, err := ResolveWindow(in, tr)
	if err != nil {
		t.Fatalf("ResolveWindow() error = %v", err)
	}
	if out.Request.Args["start_date"] != "2025-10-16" || out.Request.Args["end_date"] != "2025-11-15" {
		t.Fatalf("expected default 30-day window, got %+v", out.Request.Args)
	}
	if out.Window.Kind != "default_last_30_days" {
		t.Fatalf("unexpected window kind: %s", out.Window.Kind)
	}
}

func TestResolveWindowWidensForSubscriptions(t *testing.T) {
	t.Parallel()

	in := transactionsState("what subscriptions am I paying for?", map[string]any{})
	tr := tracex.New()

	out, err := ResolveWindow(in, tr)
	if err != nil {
		t.Fatalf("ResolveWindow() error = %v", err)
	}
	if out.Request.Args["start_date"] != "2024-11-15" || out.Request.Args["end_date"] != "2025-11-15" {
		t.Fatalf("expected 12-month window for subscription questions, got %+v", out.Request.Args)
	}
	if out.Window.Kind != "default_subscription_year" {
		t.Fatalf("unexpected window kind: %s", out.Window.Kind)
	}
}

func TestResolveWindowWidensForSubscriptionsOverRouterDates(t *testing.T) {
	t.Parallel()

	// The router defaults its required dates to the last 30 days; a 30-day
	// window can never hold three monthly charges, so the subscription
	// widening must beat router-supplied dates.
	in := transactionsState("what subscriptions am I paying for?", map[string]any{
		"start_date": "2025-10-16",
		"end_date":   "2025-11-15",
	})
	tr := tracex.New()

	out, err := ResolveWindow(in, tr)
	if err != nil {
		t.Fatalf("ResolveWindow() error = %v", err)
	}
	if out.Request.Args["start_date"] != "2024-11-15" || out.Request.Args["end_date"] != "2025-11-15" {
		t.Fatalf("subscription question must widen past router dates, got %+v", out.Request.Args)
	}
	if out.Window.Kind != "default_subscription_year" {
		t.Fatalf("unexpected window kind: %s", out.Window.Kind)
	}
}

func TestResolveWindowSubscriptionExplicitRangeStillWins(t *testing.T) {
	t.Parallel()

	in := transactionsState("recurring charges between 2025-01-01 and 2025-06-30", map[string]any{
		"start_date": "2025-10-16",
		"end_date":   "2025-11-15",
	})
	tr := tracex.New()

	out, err := ResolveWindow(in, tr)
	if err != nil {
		t.Fatalf("ResolveWindow() error = %v", err)
	}
	if out.Request.Args["start_date"] != "2025-01-01" || out.Request.Args["end_date"] != "2025-06-30" {
		t.Fatalf("explicit range must win over subscription widening, got %+v", out.Request.Args)
	}
	if out.Window.Kind != "between_explicit" {
		t.Fatalf("unexpected window kind: %s", out.Window.Kind)
	}
}

func TestResolveWindowSkipsAccountsTool(t *testing.T) {
	t.Parallel()

	in := &GraphState{
		Question: "what are my balances?",
		Today:    time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC),
		Request:  &contractx.ToolRequest{Tool: toolx.ToolGetAccounts},
	}
	tr := tracex.New()

	out, err := ResolveWindow(in, tr)
	if err != nil {
		t.Fatalf("ResolveWindow() error = %v", err)
	}
	if out.Window != nil {
		t.Fatalf("accounts tool must not get a window, got %+v", out.Window)
	}
}

func TestResolveWindowSkipsTerminalTurns(t *testing.T) {
	t.Parallel()

	in := &GraphState{Question: "tell me a joke", Done: true}
	tr := tracex.New()

	out, err := ResolveWindow(in, tr)
	if err != nil {
		t.Fatalf("ResolveWindow() error = %v", err)
	}
	if out.Window != nil {
		t.Fatalf("terminal turn must not resolve a window, got %+v", out.Window)
	}
}
