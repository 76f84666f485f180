package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/expensetracker/internal/models"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name         string
		expenses     []models.Expense
		wantTotal    float64
		wantCount    int
		validateFunc func(t *testing.T, s Summary)
	}{
		{
			name:      "no expenses",
			expenses:  nil,
			wantTotal: 0,
			wantCount: 0,
			validateFunc: func(t *testing.T, s Summary) {
				if s.Categories == nil || len(s.Categories) != 0 {
					t.Errorf("expected empty categories, got %#v", s.Categories)
				}
			},
		},
		{
			name: "groups by category and orders by total",
			expenses: []models.Expense{
				{Title: "Bus", Amount: 20, Category: "Transport"},
				{Title: "Coffee", Amount: 5, Category: "Food"},
				{Title: "Dinner", Amount: 35, Category: "Food"},
				{Title: "Gift", Amount: 20, Category: "Shopping"},
			},
			wantTotal: 80,
			wantCount: 4,
			validateFunc: func(t *testing.T, s Summary) {
				// Food: 40 (0.5), then Shopping and Transport tie at 20 and sort by name.
				want := []CategoryTotal{
					{Category: "Food", Total: 40, Count: 2, Share: 0.5},
					{Category: "Shopping", Total: 20, Count: 1, Share: 0.25},
					{Category: "Transport", Total: 20, Count: 1, Share: 0.25},
				}
				if len(s.Categories) != len(want) {
					t.Fatalf("expected %d categories, got %d", len(want), len(s.Categories))
				}
				for i, w := range want {
					got := s.Categories[i]
					if got.Category != w.Category || got.Count != w.Count ||
						math.Abs(got.Total-w.Total) > 0.001 || math.Abs(got.Share-w.Share) > 0.001 {
						t.Errorf("position %d: got %+v, want %+v", i, got, w)
					}
				}
			},
		},
		{
			name: "blank category becomes Other, whitespace trimmed",
			expenses: []models.Expense{
				{Title: "Mystery", Amount: 3, Category: ""},
				{Title: "Mystery 2", Amount: 2, Category: "   "},
				{Title: "Lunch", Amount: 10, Category: " Food "},
			},
			wantTotal: 15,
			wantCount: 3,
			validateFunc: func(t *testing.T, s Summary) {
				if len(s.Categories) != 2 {
					t.Fatalf("expected 2 categories, got %+v", s.Categories)
				}
				if s.Categories[0].Category != "Food" || s.Categories[1].Category != Uncategorized {
					t.Errorf("unexpected categories: %+v", s.Categories)
				}
				if s.Categories[1].Count != 2 {
					t.Errorf("Other count = %d, want 2", s.Categories[1].Count)
				}
			},
		},
		{
			name: "zero total leaves shares at zero",
			expenses: []models.Expense{
				{Title: "Refund", Amount: 10, Category: "Shopping"},
				{Title: "Purchase", Amount: -10, Category: "Food"},
			},
			wantTotal: 0,
			wantCount: 2,
			validateFunc: func(t *testing.T, s Summary) {
				for _, c := range s.Categories {
					if c.Share != 0 {
						t.Errorf("%s share = %v, want 0", c.Category, c.Share)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.expenses)

			if math.Abs(s.Total-tt.wantTotal) > 0.001 {
				t.Errorf("Total = %v, want %v", s.Total, tt.wantTotal)
			}
			if s.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", s.Count, tt.wantCount)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, s)
			}
		})
	}
}
