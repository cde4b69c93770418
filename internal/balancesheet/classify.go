package balancesheet

import "strings"

type accountClass int

const (
	classUnknown accountClass = iota
	classAsset
	classLiability
	classEquity
	classRevenue
	classExpense
)

// classify buckets an account by the first character of its code: 1 asset,
// 2 liability, 3 equity, 4 revenue, 5-7 expense.
func classify(code string) accountClass {
	if code == "" {
		return classUnknown
	}
	switch code[0] {
	case '1':
		return classAsset
	case '2':
		return classLiability
	case '3':
		return classEquity
	case '4':
		return classRevenue
	case '5', '6', '7':
		return classExpense
	}
	return classUnknown
}

var (
	currentAssetWords = []string{"cash", "bank", "receivable", "inventory", "prepaid", "current"}
	fixedAssetWords   = []string{"fixed", "equipment", "building", "vehicle"}
	currentLiabWords  = []string{"payable", "accrued", "current", "short-term", "gst", "tds"}
	capitalWords      = []string{"capital", "equity"}
)

func nameContainsAny(name string, words []string) bool {
	lower := strings.ToLower(name)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// Asset sub-classification: a numeric code-range heuristic first, then a
// keyword match on the account name.
func isCurrentAsset(acc Account) bool {
	if acc.Code >= "1000" && acc.Code < "2000" {
		return true
	}
	return nameContainsAny(acc.Name, currentAssetWords)
}

func isFixedAsset(acc Account) bool {
	return nameContainsAny(acc.Name, fixedAssetWords)
}

func isCurrentLiability(acc Account) bool {
	if acc.Code >= "2000" && acc.Code < "3000" {
		return true
	}
	return nameContainsAny(acc.Name, currentLiabWords)
}

func isCapitalAccount(acc Account) bool {
	return nameContainsAny(acc.Name, capitalWords)
}

func isRetainedEarnings(acc Account) bool {
	return strings.Contains(strings.ToLower(acc.Name), "retained")
}
