package tool

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/shopspring/decimal"
	contractx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/contract"
	ledgerx "github.com/tanpawarit/Finsight-Financial-Assistant/agent/ledger"
)

// Dispatcher validates tool requests against the catalog and executes them
// against a ledger source. All float amounts are converted to fixed-point
// decimal here; nothing downstream does money arithmetic on floats.
type Dispatcher struct {
	source   ledgerx.Source
	registry map[string]Descriptor
	order    []string
}

func NewDispatcher(source ledgerx.Source) (*Dispatcher, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: ledger source is required", contractx.ErrValidation)
	}

	d := &Dispatcher{
		source:   source,
		registry: make(map[string]Descriptor),
	}
	d.register(Descriptor{Info: transactionsInfo(), Handler: d.getTransactions})
	d.register(Descriptor{Info: accountsInfo(), Handler: d.getAccounts})
	return d, nil
}

func (d *Dispatcher) register(desc Descriptor) {
	d.registry[desc.Info.Name] = desc
	d.order = append(d.order, desc.Info.Name)
}

// Infos returns the catalog schemas in registration order, for binding to
// the router model.
func (d *Dispatcher) Infos() []*schema.ToolInfo {
	infos := make([]*schema.ToolInfo, 0, len(d.order))
	for _, name := range d.order {
		infos = append(infos, d.registry[name].Info)
	}
	return infos
}

func (d *Dispatcher) Dispatch(ctx context.Context, req contractx.ToolRequest) (contractx.ToolResult, error) {
	name := strings.TrimSpace(req.Tool)
	desc, ok := d.registry[name]
	if !ok {
		return contractx.ToolResult{}, fmt.Errorf("%w: %q", contractx.ErrUnknownTool, name)
	}
	return desc.Handler(ctx, req.Args)
}

func (d *Dispatcher) getTransactions(ctx context.Context, args map[string]any) (contractx.ToolResult, error) {
	query, err := transactionsQuery(args)
	if err != nil {
		return contractx.ToolResult{}, err
	}

	raws, err := d.source.Transactions(ctx, query)
	if err != nil {
		return contractx.ToolResult{}, fmt.Errorf("%w: transactions: %v", contractx.ErrTransactionSource, err)
	}
	rawAccounts, err := d.source.Accounts(ctx)
	if err != nil {
		return contractx.ToolResult{}, fmt.Errorf("%w: accounts: %v", contractx.ErrTransactionSource, err)
	}

	accounts := normalizeAccounts(rawAccounts)
	byID := make(map[string]ledgerx.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.ID] = acc
	}

	txns := make([]ledgerx.Transaction, 0, len(raws))
	for _, raw := range raws {
		amount := decimal.NewFromFloat(raw.Amount).Round(2)
		txn := ledgerx.Transaction{
			ID:         raw.ID,
			AccountID:  raw.AccountID,
			Date:       raw.Date,
			Merchant:   raw.Name,
			Category:   raw.Category,
			Amount:     amount,
			Currency:   raw.Currency,
			Normalized: ledgerx.NormalizeMerchant(raw.Name),
			Tag:        ledgerx.TagFlow(amount, raw.Category),
		}
		if acc, ok := byID[raw.AccountID]; ok {
			txn.AccountName = acc.Name
			txn.AccountSubtype = acc.Subtype
			txn.AccountMask = acc.Mask
		}
		txns = append(txns, txn)
	}

	sort.SliceStable(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.Before(txns[j].Date)
		}
		return txns[i].ID < txns[j].ID
	})

	window := query.Window
	return contractx.ToolResult{
		Tool:         ToolGetTransactions,
		Window:       &window,
		Accounts:     accounts,
		Transactions: txns,
		Recurring:    ledgerx.DetectRecurring(txns),
	}, nil
}

func (d *Dispatcher) getAccounts(ctx context.Context, _ map[string]any) (contractx.ToolResult, error) {
	rawAccounts, err := d.source.Accounts(ctx)
	if err != nil {
		return contractx.ToolResult{}, fmt.Errorf("%w: accounts: %v", contractx.ErrTransactionSource, err)
	}
	return contractx.ToolResult{
		Tool:     ToolGetAccounts,
		Accounts: normalizeAccounts(rawAccounts),
	}, nil
}

func normalizeAccounts(raws []ledgerx.RawAccount) []ledgerx.Account {
	accounts := make([]ledgerx.Account, 0, len(raws))
	for _, raw := range raws {
		accounts = append(accounts, ledgerx.Account{
			ID:        raw.ID,
			Name:      raw.Name,
			Official:  raw.Official,
			Type:      raw.Type,
			Subtype:   raw.Subtype,
			Mask:      raw.Mask,
			Available: decimal.NewFromFloat(raw.Available).Round(2),
			Current:   decimal.NewFromFloat(raw.Current).Round(2),
			Currency:  raw.Currency,
		})
	}
	return accounts
}

func transactionsQuery(args map[string]any) (ledgerx.Query, error) {
	start, err := requiredDate(args, "start_date")
	if err != nil {
		return ledgerx.Query{}, err
	}
	end, err := requiredDate(args, "end_date")
	if err != nil {
		return ledgerx.Query{}, err
	}
	if end.Before(start) {
		return ledgerx.Query{}, fmt.Errorf("%w: end_date %s is before start_date %s",
			contractx.ErrInvalidArguments, end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	query := ledgerx.Query{
		Window: ledgerx.DateRange{Start: start, End: end},
	}

	if raw, ok := args["category"]; ok {
		s, ok := raw.(string)
		if !ok {
			return ledgerx.Query{}, fmt.Errorf("%w: category must be a string, got %T", contractx.ErrInvalidArguments, raw)
		}
		if strings.TrimSpace(s) != "" {
			category, ok := ledgerx.ParseCategory(s)
			if !ok {
				return ledgerx.Query{}, fmt.Errorf("%w: unknown category %q", contractx.ErrInvalidArguments, s)
			}
			query.Category = category
		}
	}

	if raw, ok := args["merchant"]; ok {
		s, ok := raw.(string)
		if !ok {
			return ledgerx.Query{}, fmt.Errorf("%w: merchant must be a string, got %T", contractx.ErrInvalidArguments, raw)
		}
		query.Merchant = strings.TrimSpace(s)
	}

	if raw, ok := args["limit"]; ok {
		limit, err := intArg("limit", raw)
		if err != nil {
			return ledgerx.Query{}, err
		}
		if limit <= 0 {
			return ledgerx.Query{}, fmt.Errorf("%w: limit must be positive, got %d", contractx.ErrInvalidArguments, limit)
		}
		query.Limit = limit
	}

	return query, nil
}

func requiredDate(args map[string]any, key string) (time.Time, error) {
	raw, ok := args[key]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s is required", contractx.ErrInvalidArguments, key)
	}
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s must be a string, got %T", contractx.ErrInvalidArguments, key, raw)
	}
	d, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s is not a valid YYYY-MM-DD date: %q", contractx.ErrInvalidArguments, key, s)
	}
	return d, nil
}

func intArg(key string, raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%w: %s must be an integer, got %v", contractx.ErrInvalidArguments, key, v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("%w: %s must be an integer, got %T", contractx.ErrInvalidArguments, key, raw)
	}
}
