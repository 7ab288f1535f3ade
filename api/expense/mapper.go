package expense

import (
	"fmt"
	"strings"
	"unicode"

	"VarejoOpsSaas/api/constants"
)

// MapRow turns one decoded spreadsheet row into a canonical expense for the
// given reporting period. Absent text columns fall back to fixed sentinels
// so downstream grouping never sees empty keys; the sentinels also feed the
// dedup key, so they must not change between imports.
func MapRow(rec RawRecord, rowIndex int, period Period) Expense {
	amountCell, _ := ResolveColumn(rec, amountKeywords)
	dateCell, _ := ResolveColumn(rec, dateKeywords)
	statusCell, _ := ResolveColumn(rec, statusKeywords)

	e := Expense{
		ID:              fmt.Sprintf("temp-%d", rowIndex),
		Branch:          resolveString(rec, branchKeywords, constants.UnknownBranch),
		Group:           resolveString(rec, groupKeywords, constants.UnknownCategory),
		Subgroup:        resolveString(rec, subgroupKeywords, constants.UnknownCategory),
		CostCenter:      resolveString(rec, costCenterKeywords, constants.UnknownCategory),
		ChartOfAccounts: resolveString(rec, chartKeywords, constants.UnknownCategory),
		Vendor:          resolveString(rec, vendorKeywords, constants.UnknownVendor),
		Title:           resolveString(rec, titleKeywords, fmt.Sprintf("Item %d", rowIndex)),
		DateText:        ParseDateValue(dateCell),
		Amount:          ParseAmount(amountCell),
		Status:          ParseStatus(statusCell),
		RefMonth:        period.Month,
		RefYear:         period.Year,
		IsNew:           true,
	}
	e.DedupKey = DedupKey(e)
	return e
}

// DedupKey derives the content hash that recognizes the same logical expense
// across repeated imports: the identity tuple pipe-joined, stripped of all
// whitespace, lower-cased. Pure; the same inputs always give the same key.
func DedupKey(e Expense) string {
	raw := fmt.Sprintf("%s|%s|%s|%s|%s|%d|%d",
		e.Branch, e.Vendor, FormatAmount(e.Amount), e.DateText, e.Title, e.RefMonth, e.RefYear)
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	return strings.ToLower(stripped)
}
