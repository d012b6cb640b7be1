package tool

import (
	"context"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/contract"
)

const (
	ToolGetTransactions = "get_transactions"
	ToolGetAccounts     = "get_accounts"
)

// Handler executes one validated tool call.
type Handler func(ctx context.Context, args map[string]any) (contractx.ToolResult, error)

// Descriptor pairs a tool's schema with its handler. The catalog is a
// registry so that adding a tool is a registration, not a structural change.
type Descriptor struct {
	Info    *schema.ToolInfo
	Handler Handler
}

func transactionsInfo() *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: ToolGetTransactions,
		Desc: "Fetch the user's bank transactions for a given date range. " +
			"Use this ONLY if the question can be answered purely from " +
			"transaction data (spending, merchants, categories).",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"start_date": {Type: schema.String, Desc: "Start date (inclusive), YYYY-MM-DD.", Required: true},
			"end_date":   {Type: schema.String, Desc: "End date (inclusive), YYYY-MM-DD.", Required: true},
			"category":   {Type: schema.String, Desc: "Optional category filter, e.g. restaurants, groceries, coffee."},
			"merchant":   {Type: schema.String, Desc: "Optional merchant name filter."},
			"limit":      {Type: schema.Integer, Desc: "Optional maximum number of transactions, must be positive."},
		}),
	}
}

func accountsInfo() *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: ToolGetAccounts,
		Desc: "Fetch the user's account list and balances. " +
			"Use this for questions about balances, accounts, or cash on hand.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
	}
}
