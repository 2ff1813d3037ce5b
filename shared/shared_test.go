package shared_test

import (
	"testing"

	"utabox/shared"
	"utabox/shared/constant"
	"utabox/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *bool
	}{
		{name: "true", input: "true", want: boolPtr(true)},
		{name: "false", input: "false", want: boolPtr(false)},
		{name: "empty", input: "", want: nil},
		{name: "garbage", input: "maybe", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shared.ConvertStringToBool(tt.input)

			if tt.want == nil {
				if got != nil {
					t.Errorf("expected nil, got %v", *got)
				}

				return
			}

			if got == nil || *got != *tt.want {
				t.Errorf("expected %v, got %v", *tt.want, got)
			}
		})
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "exact pages", total: 20, limit: 10, want: 2},
		{name: "partial last page", total: 21, limit: 10, want: 3},
		{name: "no data", total: 0, limit: 10, want: 1},
		{name: "no limit", total: 20, limit: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shared.CalculateTotalPage(tt.total, tt.limit); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateRequest struct {
		Name     string `db:"name"`
		Capacity int    `db:"capacity"`
		Notes    string `db:"notes"`
	}

	fields := shared.TransformFields(updateRequest{Name: "Deluxe 2", Capacity: 10}, "staff-1")

	if fields["name"] != "Deluxe 2" {
		t.Errorf("expected name to be set, got %v", fields["name"])
	}

	if fields["capacity"] != 10 {
		t.Errorf("expected capacity to be set, got %v", fields["capacity"])
	}

	if _, ok := fields["notes"]; ok {
		t.Error("expected zero-value notes to be dropped")
	}

	if fields[constant.FieldModifiedBy] != "staff-1" {
		t.Errorf("expected modified_by to be staff-1, got %v", fields[constant.FieldModifiedBy])
	}

	if _, ok := fields[constant.FieldModifiedAt]; !ok {
		t.Error("expected modified_at to be stamped")
	}
}

func TestBuildCacheKey(t *testing.T) {
	if got := shared.BuildCacheKey("booking:get", "t-1", "b-1"); got != "booking:get:t-1:b-1" {
		t.Errorf("unexpected cache key %q", got)
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	paramsA := dto.QueryParams{Page: 1, Limit: 10}
	paramsB := dto.QueryParams{Page: 2, Limit: 10}

	filter := shared.FilterByTenant("t-1", "tenant_id", "bookings")

	keyA := shared.BuildCacheKeyWithQuery("booking:gets", paramsA, filter)
	keyB := shared.BuildCacheKeyWithQuery("booking:gets", paramsB, filter)

	if keyA == keyB {
		t.Error("expected different pages to produce different cache keys")
	}

	if keyA != shared.BuildCacheKeyWithQuery("booking:gets", paramsA, filter) {
		t.Error("expected identical inputs to produce identical cache keys")
	}
}

func TestFilterByTenantAndID(t *testing.T) {
	group := shared.FilterByTenantAndID("t-1", "r-1", "tenant_id", "id", "rooms")

	clause, args := group.GetWhereClause()

	if args["tenant_id"] != "t-1" || args["id"] != "r-1" {
		t.Errorf("unexpected args %v", args)
	}

	if clause == "" {
		t.Error("expected a where clause")
	}
}
