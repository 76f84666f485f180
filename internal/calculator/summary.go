// Package calculator aggregates expense amounts.
package calculator

import (
	"sort"
	"strings"

	"github.com/mmynk/expensetracker/internal/models"
)

// Uncategorized labels expenses whose category is blank.
const Uncategorized = "Other"

// CategoryTotal is the aggregate of one category.
type CategoryTotal struct {
	Category string
	Total    float64
	Count    int
	Share    float64 // Fraction of the overall total, 0 when the overall total is 0
}

// Summary is the aggregate of a list of expenses.
type Summary struct {
	Total      float64
	Count      int
	Categories []CategoryTotal
}

// Summarize totals expenses per category.
// Categories are matched exactly after trimming surrounding whitespace, and
// are ordered by total descending, then by name.
func Summarize(expenses []models.Expense) Summary {
	byCategory := make(map[string]*CategoryTotal)
	summary := Summary{Categories: []CategoryTotal{}}

	for _, e := range expenses {
		name := strings.TrimSpace(e.Category)
		if name == "" {
			name = Uncategorized
		}

		ct, exists := byCategory[name]
		if !exists {
			ct = &CategoryTotal{Category: name}
			byCategory[name] = ct
		}
		ct.Total += e.Amount
		ct.Count++

		summary.Total += e.Amount
		summary.Count++
	}

	for _, ct := range byCategory {
		if summary.Total != 0 {
			ct.Share = ct.Total / summary.Total
		}
		summary.Categories = append(summary.Categories, *ct)
	}

	sort.Slice(summary.Categories, func(i, j int) bool {
		a, b := summary.Categories[i], summary.Categories[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Category < b.Category
	})

	return summary
}
