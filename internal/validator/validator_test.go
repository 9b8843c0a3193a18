package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
)

type betPayload struct {
	Budget decimal.Decimal  `binding:"required,decimal_gt0,money"`
	Cap    *decimal.Decimal `binding:"omitempty,decimal_gt0"`
	Status string           `binding:"omitempty,bet_status"`
	Type   string           `binding:"omitempty,transaction_type"`
	Parent *string          `binding:"omitempty,uuid_or_empty"`
}

func init() {
	Register()
}

func TestRegister(t *testing.T) {
	neg := decimal.RequireFromString("-1")
	empty, parent, junk := "", "01890a5d-ac96-774b-bcce-b302099a8057", "not-a-uuid"

	tests := []struct {
		name    string
		payload betPayload
		wantErr bool
	}{
		{"valid", betPayload{Budget: decimal.RequireFromString("100.50"), Status: "ACTIVE", Type: "EXPENSE"}, false},
		{"zero_budget", betPayload{Budget: decimal.Zero}, true},
		{"negative_budget", betPayload{Budget: decimal.RequireFromString("-5")}, true},
		{"three_decimals", betPayload{Budget: decimal.RequireFromString("1.005")}, true},
		{"too_large", betPayload{Budget: decimal.RequireFromString("1000000000000")}, true},
		{"largest_fitting", betPayload{Budget: decimal.RequireFromString("999999999999.99")}, false},
		{"negative_optional", betPayload{Budget: decimal.NewFromInt(1), Cap: &neg}, true},
		{"lowercase_status", betPayload{Budget: decimal.NewFromInt(1), Status: "active"}, true},
		{"empty_parent_detaches", betPayload{Budget: decimal.NewFromInt(1), Parent: &empty}, false},
		{"uuid_parent", betPayload{Budget: decimal.NewFromInt(1), Parent: &parent}, false},
		{"malformed_parent", betPayload{Budget: decimal.NewFromInt(1), Parent: &junk}, true},
		{"unknown_type", betPayload{Budget: decimal.NewFromInt(1), Type: "TRANSFER"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tt.payload)
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
