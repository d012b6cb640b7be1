package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var merchantAliases = []struct {
	substr string
	name   string
}{
	{"starbucks", "Starbucks"},
	{"mcdonald", "McDonald's"},
	{"kfc", "KFC"},
	{"whole foods", "Whole Foods"},
	{"chipotle", "Chipotle"},
	{"olive garden", "Olive Garden"},
	{"uber eats", "Uber Eats"},
	{"uber", "Uber/Lyft"},
	{"lyft", "Uber/Lyft"},
	{"netflix", "Netflix"},
	{"gusto pay", "Payroll"},
	{"payroll", "Payroll"},
	{"cd deposit", "Deposit"},
	{"automatic payment", "Automatic Payment"},
	{"touchstone", "Touchstone Climbing"},
	{"united airlines", "Airline"},
	{"delta", "Airline"},
	{"american airlines", "Airline"},
	{"sparkfun", "SparkFun"},
	{"madison bicycle", "Bike Shop"},
	{"amazon", "Amazon"},
	{"pg&e", "PG&E"},
	{"shell", "Shell"},
}

// NormalizeMerchant consolidates raw statement descriptors into a friendly
// merchant name. Unknown descriptors pass through trimmed.
func NormalizeMerchant(raw string) string {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)
	for _, alias := range merchantAliases {
		if strings.Contains(lower, alias.substr) {
			return alias.name
		}
	}
	return trimmed
}

// TagFlow classifies a transaction's direction. Negative amounts are debits;
// the income/transfer categories override the plain sign reading.
func TagFlow(amount decimal.Decimal, category Category) FlowTag {
	switch {
	case category == CategoryIncome:
		return TagIncome
	case category == CategoryTransfer:
		return TagTransfer
	case amount.IsNegative():
		return TagSpend
	case amount.IsPositive():
		return TagRefund
	default:
		return TagOther
	}
}

const recurringMinCount = 3

// DetectRecurring finds merchants that charge a similar amount at a weekly or
// monthly cadence: at least three debits, amounts within max($1, 10% of the
// average), average gap of 6-8 days (weekly) or 27-33 days (monthly).
func DetectRecurring(txns []Transaction) []RecurringCharge {
	byMerchant := make(map[string][]Transaction)
	for _, t := range txns {
		if t.Tag != TagSpend {
			continue
		}
		name := t.Normalized
		if name == "" {
			name = t.Merchant
		}
		if name == "" {
			continue
		}
		byMerchant[name] = append(byMerchant[name], t)
	}

	merchants := make([]string, 0, len(byMerchant))
	for name := range byMerchant {
		merchants = append(merchants, name)
	}
	sort.Strings(merchants)

	var out []RecurringCharge
	for _, name := range merchants {
		group := byMerchant[name]
		if len(group) < recurringMinCount {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })

		total := decimal.Zero
		for _, t := range group {
			total = total.Add(t.Amount.Abs())
		}
		count := decimal.NewFromInt(int64(len(group)))
		avg := total.Div(count).Round(2)

		minAmt, maxAmt := group[0].Amount.Abs(), group[0].Amount.Abs()
		for _, t := range group[1:] {
			abs := t.Amount.Abs()
			if abs.LessThan(minAmt) {
				minAmt = abs
			}
			if abs.GreaterThan(maxAmt) {
				maxAmt = abs
			}
		}
		tolerance := decimal.NewFromInt(1)
		if tenth := avg.Mul(decimal.NewFromFloat(0.1)); tenth.GreaterThan(tolerance) {
			tolerance = tenth
		}
		if maxAmt.Sub(minAmt).GreaterThan(tolerance) {
			continue
		}

		period, ok := cadence(group)
		if !ok {
			continue
		}

		out = append(out, RecurringCharge{
			Merchant: name,
			Period:   period,
			Average:  avg,
			Count:    len(group),
			First:    group[0].Date,
			Last:     group[len(group)-1].Date,
		})
	}
	return out
}

func cadence(sorted []Transaction) (string, bool) {
	gapTotal := 0
	for i := 1; i < len(sorted); i++ {
		gapTotal += int(sorted[i].Date.Sub(sorted[i-1].Date) / (24 * time.Hour))
	}
	avgGap := float64(gapTotal) / float64(len(sorted)-1)
	switch {
	case avgGap >= 27 && avgGap <= 33:
		return "monthly", true
	case avgGap >= 6 && avgGap <= 8:
		return "weekly", true
	default:
		return "", false
	}
}
