package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Sandbox is a deterministic in-memory Source. Its dataset is anchored to an
// injectable clock so tests can pin the calendar; with the same anchor and
// query it always yields the same records in the same order.
type Sandbox struct {
	now func() time.Time
}

func NewSandbox(now func() time.Time) *Sandbox {
	if now == nil {
		now = time.Now
	}
	return &Sandbox{now: now}
}

type seedTxn struct {
	daysAgo   int
	name      string
	amount    float64
	category  Category
	accountID string
}

const (
	accChecking = "acc_checking"
	accSavings  = "acc_savings"
	accCredit   = "acc_credit"
)

// Seed data loosely modeled on aggregator sandbox output. Weekly coffee and
// monthly streaming charges are spaced so recurrence detection has something
// to find.
var sandboxSeed = []seedTxn{
	{1, "STARBUCKS STORE 05221", -7.80, CategoryCoffee, accChecking},
	{2, "WHOLE FOODS MARKET", -65.20, CategoryGroceries, accChecking},
	{3, "NETFLIX.COM", -15.99, CategoryEntertainment, accCredit},
	{5, "UBER EATS", -12.50, CategoryRestaurants, accCredit},
	{6, "SHELL OIL 57442", -38.40, CategoryTransport, accCredit},
	{8, "STARBUCKS STORE 05221", -7.80, CategoryCoffee, accChecking},
	{12, "GUSTO PAY 78463", 2450.00, CategoryIncome, accChecking},
	{14, "CD DEPOSIT .INITIAL.", 500.00, CategoryTransfer, accSavings},
	{15, "STARBUCKS STORE 05221", -7.80, CategoryCoffee, accChecking},
	{16, "WHOLE FOODS MARKET", -58.75, CategoryGroceries, accChecking},
	{20, "CHIPOTLE MEXICAN GRILL", -52.50, CategoryRestaurants, accCredit},
	{22, "STARBUCKS STORE 05221", -7.80, CategoryCoffee, accChecking},
	{24, "AMAZON MKTPLACE PMTS", -34.99, CategoryShopping, accCredit},
	{27, "TOUCHSTONE CLIMBING", -89.00, CategoryFitness, accChecking},
	{29, "STARBUCKS STORE 05221", -7.80, CategoryCoffee, accChecking},
	{30, "OLIVE GARDEN 00071", -45.00, CategoryRestaurants, accCredit},
	{33, "NETFLIX.COM", -15.99, CategoryEntertainment, accCredit},
	{36, "UNITED AIRLINES", -500.00, CategoryTravel, accCredit},
	{40, "MADISON BICYCLE SHOP", -129.99, CategoryShopping, accCredit},
	{42, "GUSTO PAY 78463", 2450.00, CategoryIncome, accChecking},
	{48, "SPARKFUN", -89.40, CategoryShopping, accCredit},
	{50, "PG&E UTILITIES", -120.33, CategoryUtilities, accChecking},
	{55, "UBER 063015 SF**POOL**", -5.40, CategoryTransport, accChecking},
	{63, "NETFLIX.COM", -15.99, CategoryEntertainment, accCredit},
	{70, "KFC #0242", -18.25, CategoryRestaurants, accCredit},
	{80, "AUTOMATIC PAYMENT - THANK", 200.00, CategoryTransfer, accCredit},
	{93, "NETFLIX.COM", -15.99, CategoryEntertainment, accCredit},
}

var sandboxAccounts = []RawAccount{
	{
		ID: accChecking, Name: "Checking", Official: "Everyday Checking",
		Type: "depository", Subtype: "checking", Mask: "1111",
		Available: 2350.17, Current: 2435.17, Currency: "USD",
	},
	{
		ID: accSavings, Name: "Savings", Official: "High Yield Savings",
		Type: "depository", Subtype: "savings", Mask: "2222",
		Available: 10250.00, Current: 10250.00, Currency: "USD",
	},
	{
		ID: accCredit, Name: "Credit Card", Official: "Platinum Rewards Card",
		Type: "credit", Subtype: "credit card", Mask: "3333",
		Available: 4657.90, Current: -342.10, Currency: "USD",
	},
}

func (s *Sandbox) Transactions(_ context.Context, q Query) ([]RawTransaction, error) {
	if q.Window.Start.IsZero() || q.Window.End.IsZero() {
		return nil, fmt.Errorf("sandbox: query window is required")
	}
	if q.Window.End.Before(q.Window.Start) {
		return nil, fmt.Errorf("sandbox: window end %s before start %s",
			q.Window.End.Format("2006-01-02"), q.Window.Start.Format("2006-01-02"))
	}

	today := midnight(s.now())
	out := make([]RawTransaction, 0, len(sandboxSeed))
	for i, seed := range sandboxSeed {
		txn := RawTransaction{
			ID:        fmt.Sprintf("txn_%04d", i+1),
			AccountID: seed.accountID,
			Date:      today.AddDate(0, 0, -seed.daysAgo),
			Name:      seed.name,
			Amount:    seed.amount,
			Category:  seed.category,
			Currency:  "USD",
		}
		if !q.Window.Contains(txn.Date) {
			continue
		}
		if q.Category != "" && txn.Category != q.Category {
			continue
		}
		if q.Merchant != "" && !strings.Contains(strings.ToLower(txn.Name), strings.ToLower(q.Merchant)) {
			continue
		}
		out = append(out, txn)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *Sandbox) Accounts(_ context.Context) ([]RawAccount, error) {
	out := make([]RawAccount, len(sandboxAccounts))
	copy(out, sandboxAccounts)
	return out, nil
}
