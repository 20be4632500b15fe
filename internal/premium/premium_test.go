package premium

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seguros/pkg/errors"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name         string
		kind         string
		insuredValue string
		riskTier     string
		want         string
	}{
		{"auto low risk", "Auto", "20000", "LOW", "800.00"},
		{"home medium risk", "Home", "100000", "MEDIUM", "2000.00"},
		{"life high risk", "Life", "50000", "HIGH", "750.00"},
		{"unknown kind falls back to catch-all rate", "Boat", "10000", "MEDIUM", "300.00"},
		{"unknown tier falls back to neutral multiplier", "Auto", "20000", "EXTREME", "1000.00"},
		{"empty kind and tier degrade to defaults", "", "10000", "", "300.00"},
		{"fractional insured value", "Auto", "19999.99", "LOW", "800.00"},
		{"two decimals always present", "Life", "100", "MEDIUM", "1.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.kind, tt.insuredValue, tt.riskTier)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateRejectsNonNumericValue(t *testing.T) {
	_, err := Calculate("Auto", "lots", "LOW")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}
