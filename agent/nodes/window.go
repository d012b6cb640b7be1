package turnnode

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/contract"
	ledgerx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/ledger"
	toolx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/tool"
	tracex "github.com/tanpawarit/Finsight-Financial-Assistant/agent/trace"
)

const (
	dateLayout        = "2006-01-02"
	defaultWindowDays = 30
)

var subscriptionHints = []string{
	"subscription", "subscriptions", "recurring", "monthly payment", "monthly payments",
}

// ResolveWindow fixes the effective date range for a transactions request.
// A range parsed from the question wins over everything. Subscription
// questions then get 12 months regardless of what the router filled in,
// since recurrence detection needs at least three monthly charges and the
// router defaults its dates to the last 30 days. Only then do the router's
// own dates count; the final fallback is the last 30 days.
func ResolveWindow(in *GraphState, tr *tracex.Trace) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Done || in.Request == nil || in.Request.Tool != toolx.ToolGetTransactions {
		return in, nil
	}

	if in.Request.Args == nil {
		in.Request.Args = map[string]any{}
	}

	if window, ok := ledgerx.ParseRange(in.Question, in.Today); ok {
		applyWindow(in, window, tr)
		return in, nil
	}

	end := in.Today
	if isSubscriptionQuestion(in.Question) {
		window := ledgerx.DateRange{Start: end.AddDate(-1, 0, 0), End: end, Kind: "default_subscription_year"}
		applyWindow(in, window, tr)
		return in, nil
	}

	if hasDateArg(in.Request.Args, "start_date") && hasDateArg(in.Request.Args, "end_date") {
		return in, nil
	}

	window := ledgerx.DateRange{Start: end.AddDate(0, 0, -defaultWindowDays), End: end, Kind: "default_last_30_days"}
	applyWindow(in, window, tr)
	return in, nil
}

func applyWindow(in *GraphState, window ledgerx.DateRange, tr *tracex.Trace) {
	in.Request.Args["start_date"] = window.Start.Format(dateLayout)
	in.Request.Args["end_date"] = window.End.Format(dateLayout)
	in.Window = &window
	tr.SetEffectiveRange(window)
	tr.SetToolRequest(*in.Request)
}

func hasDateArg(args map[string]any, key string) bool {
	raw, ok := args[key]
	if !ok {
		return false
	}
	s, ok := raw.(string)
	return ok && strings.TrimSpace(s) != ""
}

func isSubscriptionQuestion(question string) bool {
	q := strings.ToLower(question)
	for _, hint := range subscriptionHints {
		if strings.Contains(q, hint) {
			return true
		}
	}
	return false
}
