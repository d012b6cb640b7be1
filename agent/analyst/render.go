package analyst

import (
	"fmt"
	"sort"
	"strings"

	contractx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/contract"
	ledgerx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/ledger"
	toolx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/tool"
)

const dateLayout = "2006-01-02"

// RenderResult produces a deterministic textual snapshot of a tool result:
// transactions ordered by date ascending then id, fixed two-decimal amounts.
// Identical input always yields the identical string, so the synthesized
// analysis prompt is reproducible.
func RenderResult(result contractx.ToolResult) string {
	var b strings.Builder

	if result.Window != nil {
		fmt.Fprintf(&b, "Effective date range: %s to %s\n",
			result.Window.Start.Format(dateLayout), result.Window.End.Format(dateLayout))
	} else {
		b.WriteString("Effective date range: none (account snapshot)\n")
	}

	if len(result.Accounts) > 0 {
		b.WriteString("Accounts:\n")
		for _, acc := range result.Accounts {
			fmt.Fprintf(&b, "  - %s (%s, ****%s): current %s, available %s %s\n",
				acc.Name, acc.Subtype, acc.Mask,
				acc.Current.StringFixed(2), acc.Available.StringFixed(2), acc.Currency)
		}
	}

	if len(result.Transactions) == 0 {
		b.WriteString("Transactions: none matched the filter.\n")
	} else {
		txns := make([]ledgerx.Transaction, len(result.Transactions))
		copy(txns, result.Transactions)
		sort.SliceStable(txns, func(i, j int) bool {
			if !txns[i].Date.Equal(txns[j].Date) {
				return txns[i].Date.Before(txns[j].Date)
			}
			return txns[i].ID < txns[j].ID
		})

		fmt.Fprintf(&b, "Transactions (%d):\n", len(txns))
		for _, t := range txns {
			merchant := t.Normalized
			if merchant == "" {
				merchant = t.Merchant
			}
			account := t.AccountName
			if t.AccountMask != "" {
				account += " ****" + t.AccountMask
			}
			fmt.Fprintf(&b, "  - %s | %s | %s | %s %s | %s | %s | %s\n",
				t.Date.Format(dateLayout), t.ID, merchant,
				t.Amount.StringFixed(2), t.Currency, t.Category, t.Tag, strings.TrimSpace(account))
		}
	}

	if len(result.Recurring) > 0 {
		b.WriteString("Recurring charges:\n")
		for _, r := range result.Recurring {
			fmt.Fprintf(&b, "  - %s: %s, average %s, count %d, %s to %s\n",
				r.Merchant, r.Period, r.Average.StringFixed(2), r.Count,
				r.First.Format(dateLayout), r.Last.Format(dateLayout))
		}
	}

	return b.String()
}

// BuildPrompt synthesizes the analysis prompt for a question and tool result.
// The orchestrator records the same string in the session trace.
func BuildPrompt(question string, result contractx.ToolResult) string {
	var b strings.Builder
	b.WriteString("You are given a user question and a snapshot of the user's account and transaction data.\n\n")
	b.WriteString("User question:\n")
	b.WriteString(strings.TrimSpace(question))
	b.WriteString("\n\nData snapshot:\n")
	b.WriteString(RenderResult(result))
	b.WriteString("\nInstructions:\n")
	b.WriteString("- Apply the spending definition from the system instruction.\n")
	b.WriteString("- ONLY use lines that appear in the snapshot; do not fabricate data.\n")
	b.WriteString("- Compute totals and short category or merchant breakdowns where relevant.\n")
	if len(result.Transactions) == 0 && result.Tool == toolx.ToolGetTransactions {
		b.WriteString("- No transactions matched; state that clearly and still answer the question coherently.\n")
	}
	b.WriteString("- Keep the answer concise.\n")
	return b.String()
}
