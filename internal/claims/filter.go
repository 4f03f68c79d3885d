package claims

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gyeh/claimstats/internal/model"
)

// All is the wildcard selection sentinel.
const All = "ALL"

// Selection is a filter choice over a set of values. All overrides Items:
// a selection carrying the wildcard resolves to every available value no
// matter which explicit items accompany it.
type Selection[T cmp.Ordered] struct {
	All   bool
	Items []T
}

// SelectAll returns the wildcard selection.
func SelectAll[T cmp.Ordered]() Selection[T] {
	return Selection[T]{All: true}
}

// ResolveSelection returns the effective value set. With the wildcard it is
// the distinct, sorted available values; otherwise the explicit items,
// deduplicated and sorted. Explicit items absent from available are kept
// and simply match nothing.
func ResolveSelection[T cmp.Ordered](available []T, sel Selection[T]) []T {
	src := sel.Items
	if sel.All {
		src = available
	}
	out := slices.Clone(src)
	slices.Sort(out)
	return slices.Compact(out)
}

// ParseYearSelection parses raw year values such as {"ALL", "2021"}.
// Values may be comma-separated and the wildcard matches in any case.
// No values at all means ALL.
func ParseYearSelection(values []string) (Selection[int], error) {
	var sel Selection[int]
	tokens := splitValues(values)
	if len(tokens) == 0 {
		return SelectAll[int](), nil
	}
	for _, v := range tokens {
		if strings.EqualFold(v, All) {
			sel.All = true
			continue
		}
		y, err := strconv.Atoi(v)
		if err != nil {
			return Selection[int]{}, fmt.Errorf("invalid year %q: want %s or a number", v, All)
		}
		sel.Items = append(sel.Items, y)
	}
	return sel, nil
}

// ParsePayerSelection parses raw payer values. No values at all means ALL.
// Payer names are not comma-split because they may contain commas, and the
// wildcard must be uppercase so a payer literally named "All" stays
// selectable.
func ParsePayerSelection(values []string) Selection[string] {
	var sel Selection[string]
	seen := false
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		seen = true
		if v == All {
			sel.All = true
			continue
		}
		sel.Items = append(sel.Items, v)
	}
	if !seen {
		return SelectAll[string]()
	}
	return sel
}

func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// DistinctYears returns the sorted distinct remittance years.
func DistinctYears(records []model.ClaimRecord) []int {
	years := make([]int, 0, 8)
	for i := range records {
		years = append(years, records[i].RemittanceYear)
	}
	slices.Sort(years)
	return slices.Compact(years)
}

// DistinctPayers returns the sorted distinct payer names.
func DistinctPayers(records []model.ClaimRecord) []string {
	payers := make([]string, 0, 16)
	for i := range records {
		payers = append(payers, records[i].PayerName)
	}
	slices.Sort(payers)
	return slices.Compact(payers)
}

// Filter keeps records whose year is in years and payer is in payers,
// preserving input order.
func Filter(records []model.ClaimRecord, years []int, payers []string) []model.ClaimRecord {
	yearSet := make(map[int]bool, len(years))
	for _, y := range years {
		yearSet[y] = true
	}
	payerSet := make(map[string]bool, len(payers))
	for _, p := range payers {
		payerSet[p] = true
	}

	out := make([]model.ClaimRecord, 0, len(records))
	for _, r := range records {
		if yearSet[r.RemittanceYear] && payerSet[r.PayerName] {
			out = append(out, r)
		}
	}
	return out
}
