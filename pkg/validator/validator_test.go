package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recipeLine struct {
	ItemID   uuid.UUID       `validate:"uuid_required"`
	Quantity decimal.Decimal `validate:"positive_decimal"`
}

func TestValidateStructPasses(t *testing.T) {
	line := recipeLine{
		ItemID:   uuid.New(),
		Quantity: decimal.NewFromInt(2),
	}
	assert.Empty(t, ValidateStruct(&line))
}

func TestUUIDRequiredRejectsZeroValue(t *testing.T) {
	line := recipeLine{
		ItemID:   uuid.Nil,
		Quantity: decimal.NewFromInt(2),
	}
	failures := ValidateStruct(&line)
	require.Len(t, failures, 1)
	assert.Equal(t, "uuid_required", failures[0].Tag)
	assert.Contains(t, failures[0].FailedField, "ItemID")
}

func TestPositiveDecimalRejectsZeroAndNegative(t *testing.T) {
	for _, q := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
		line := recipeLine{ItemID: uuid.New(), Quantity: q}
		failures := ValidateStruct(&line)
		require.Len(t, failures, 1, "quantity %s must fail", q)
		assert.Equal(t, "positive_decimal", failures[0].Tag)
	}
}
