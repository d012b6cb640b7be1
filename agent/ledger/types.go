package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category is the fixed classification set for transactions. The source must
// only emit values from this set; the dispatcher rejects filters outside it.
type Category string

const (
	CategoryRestaurants   Category = "restaurants"
	CategoryGroceries     Category = "groceries"
	CategoryCoffee        Category = "coffee"
	CategoryTransport     Category = "transport"
	CategoryTravel        Category = "travel"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryFitness       Category = "fitness"
	CategoryUtilities     Category = "utilities"
	CategoryIncome        Category = "income"
	CategoryTransfer      Category = "transfer"
	CategoryOther         Category = "other"
)

var categories = map[Category]struct{}{
	CategoryRestaurants:   {},
	CategoryGroceries:     {},
	CategoryCoffee:        {},
	CategoryTransport:     {},
	CategoryTravel:        {},
	CategoryShopping:      {},
	CategoryEntertainment: {},
	CategoryFitness:       {},
	CategoryUtilities:     {},
	CategoryIncome:        {},
	CategoryTransfer:      {},
	CategoryOther:         {},
}

// ParseCategory maps a raw filter value onto the fixed category set.
func ParseCategory(raw string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := categories[c]
	return c, ok
}

// FlowTag classifies the direction of a transaction for spend arithmetic.
type FlowTag string

const (
	TagSpend    FlowTag = "spend"
	TagIncome   FlowTag = "income"
	TagTransfer FlowTag = "transfer"
	TagRefund   FlowTag = "refund"
	TagOther    FlowTag = "other"
)

// Transaction is a normalized record with fixed-point money. Amounts are
// signed: negative is a debit, positive an inflow.
type Transaction struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	Date      time.Time       `json:"date"`
	Merchant  string          `json:"merchant"`
	Category  Category        `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`

	// Enrichment, populated by the dispatcher.
	Normalized     string  `json:"normalized_merchant,omitempty"`
	Tag            FlowTag `json:"flow_tag,omitempty"`
	AccountName    string  `json:"account_name,omitempty"`
	AccountSubtype string  `json:"account_subtype,omitempty"`
	AccountMask    string  `json:"account_mask,omitempty"`
}

// Account is a normalized account record with fixed-point balances.
type Account struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Official  string          `json:"official_name,omitempty"`
	Type      string          `json:"type"`
	Subtype   string          `json:"subtype"`
	Mask      string          `json:"mask"`
	Available decimal.Decimal `json:"available"`
	Current   decimal.Decimal `json:"current"`
	Currency  string          `json:"currency"`
}

// RecurringCharge is a detected repeating merchant charge candidate.
type RecurringCharge struct {
	Merchant string          `json:"merchant"`
	Period   string          `json:"period"` // "weekly" | "monthly"
	Average  decimal.Decimal `json:"average_amount"`
	Count    int             `json:"count"`
	First    time.Time       `json:"first_date"`
	Last     time.Time       `json:"last_date"`
}

// DateRange is an inclusive calendar window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Kind  string    `json:"kind,omitempty"`
}

func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Query is the filter the dispatcher hands to a Source. Zero-value fields
// mean "no filter" except the window, which is always set.
type Query struct {
	Window   DateRange
	Category Category
	Merchant string
	Limit    int
}

// RawTransaction is what a Source yields on the wire: float amounts, flat
// fields. The dispatcher owns the conversion to fixed-point Transaction
// values; nothing past that boundary touches floats.
type RawTransaction struct {
	ID        string
	AccountID string
	Date      time.Time
	Name      string
	Amount    float64
	Category  Category
	Currency  string
}

// RawAccount mirrors RawTransaction for account records.
type RawAccount struct {
	ID        string
	Name      string
	Official  string
	Type      string
	Subtype   string
	Mask      string
	Available float64
	Current   float64
	Currency  string
}

// Source supplies account and transaction records. The sandbox implementation
// is deterministic; a production implementation would sit on a bank data
// aggregator. A Source must never return records outside the query filter.
type Source interface {
	Transactions(ctx context.Context, q Query) ([]RawTransaction, error)
	Accounts(ctx context.Context) ([]RawAccount, error)
}
