package dto_test

import (
	"strings"
	"testing"
	"time"

	"utabox/shared/dto"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name       string
		filter     dto.Filter
		wantClause string
		wantArgs   map[string]any
	}{
		{
			name: "eq with table prefix",
			filter: dto.Filter{
				Field:    "tenant_id",
				Value:    "t-1",
				Operator: dto.FilterOperatorEq,
				Table:    "bookings",
			},
			wantClause: "bookings.tenant_id = :tenant_id",
			wantArgs:   map[string]any{"tenant_id": "t-1"},
		},
		{
			name: "less with custom arg name",
			filter: dto.Filter{
				ArgName:  "window_to",
				Field:    "start_time",
				Value:    "2026-09-07T22:00:00Z",
				Operator: dto.FilterOperatorLess,
				Table:    "bookings",
			},
			wantClause: "bookings.start_time < :window_to",
			wantArgs:   map[string]any{"window_to": "2026-09-07T22:00:00Z"},
		},
		{
			name: "greater with custom arg name",
			filter: dto.Filter{
				ArgName:  "window_from",
				Field:    "end_time",
				Value:    "2026-09-07T09:00:00Z",
				Operator: dto.FilterOperatorGreater,
				Table:    "bookings",
			},
			wantClause: "bookings.end_time > :window_from",
			wantArgs:   map[string]any{"window_from": "2026-09-07T09:00:00Z"},
		},
		{
			name: "not eq",
			filter: dto.Filter{
				Field:    "status",
				Value:    "cancelled",
				Operator: dto.FilterOperatorNotEq,
			},
			wantClause: "status != :status",
			wantArgs:   map[string]any{"status": "cancelled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := tt.filter.GetWhereClause()

			if strings.TrimSpace(clause) != tt.wantClause {
				t.Errorf("expected clause %q, got %q", tt.wantClause, clause)
			}

			if len(args) != len(tt.wantArgs) {
				t.Fatalf("expected %d args, got %d", len(tt.wantArgs), len(args))
			}

			for name, want := range tt.wantArgs {
				if args[name] != want {
					t.Errorf("expected arg %s to be %v, got %v", name, want, args[name])
				}
			}
		})
	}
}

func TestFilter_GetWhereClause_In(t *testing.T) {
	filter := dto.Filter{
		Field:    "status",
		Value:    []string{"pending", "confirmed"},
		Operator: dto.FilterOperatorIn,
		Table:    "bookings",
	}

	clause, args := filter.GetWhereClause()

	if strings.TrimSpace(clause) != "bookings.status IN (:status_0, :status_1)" {
		t.Errorf("unexpected clause %q", clause)
	}

	if args["status_0"] != "pending" || args["status_1"] != "confirmed" {
		t.Errorf("unexpected args %v", args)
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	now := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)

	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    "tenant_id",
				Value:    "t-1",
				Operator: dto.FilterOperatorEq,
				Table:    "bookings",
			},
			dto.Filter{
				ArgName:  "window_from",
				Field:    "end_time",
				Value:    now,
				Operator: dto.FilterOperatorGreater,
				Table:    "bookings",
			},
		},
	}

	clause, args := group.GetWhereClause()

	if !strings.Contains(clause, "bookings.tenant_id = :tenant_id") {
		t.Errorf("expected tenant predicate in %q", clause)
	}

	if !strings.Contains(clause, "bookings.end_time > :window_from") {
		t.Errorf("expected window predicate in %q", clause)
	}

	if !strings.Contains(clause, " AND ") {
		t.Errorf("expected AND join in %q", clause)
	}

	if args["tenant_id"] != "t-1" || args["window_from"] != now {
		t.Errorf("unexpected args %v", args)
	}
}

func TestFilterGroup_GetWhereClause_Empty(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	clause, args := group.GetWhereClause()

	if clause != "" {
		t.Errorf("expected empty clause, got %q", clause)
	}

	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}
