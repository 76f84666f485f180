package metrics

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/expensetracker/internal/access"
	"github.com/mmynk/expensetracker/internal/storage"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: "allowed"},
		{err: fmt.Errorf("wrapped: %w", storage.ErrInvalidIdentifier), want: "invalid"},
		{err: access.ErrInvalidExpense, want: "invalid"},
		{err: fmt.Errorf("expense x: %w", storage.ErrNotFound), want: "not_found"},
		{err: access.ErrUnauthenticated, want: "unauthenticated"},
		{err: access.ErrForbidden, want: "forbidden"},
		{err: errors.New("disk on fire"), want: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Outcome(tt.err); got != tt.want {
				t.Errorf("Outcome(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestRecordDecision(t *testing.T) {
	m := New()

	m.RecordDecision(access.OpUpdate, access.ErrForbidden)
	m.RecordDecision(access.OpUpdate, access.ErrForbidden)
	m.RecordDecision(access.OpUpdate, nil)

	if got := testutil.ToFloat64(m.decisions.WithLabelValues(access.OpUpdate, "forbidden")); got != 2 {
		t.Errorf("forbidden updates = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.decisions.WithLabelValues(access.OpUpdate, "allowed")); got != 1 {
		t.Errorf("allowed updates = %v, want 1", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.RecordDecision(access.OpList, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	if !strings.Contains(body, `expensetracker_access_decisions_total{op="list",outcome="allowed"} 1`) {
		t.Errorf("metrics output missing decision counter:\n%s", body)
	}
}
