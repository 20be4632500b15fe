// Package premium computes policy premiums. Pure arithmetic, no ledger
// access.
package premium

import (
	"github.com/shopspring/decimal"

	"seguros/pkg/errors"
)

// Base rates per policy kind. Unrecognized kinds fall back to the catch-all
// rate rather than failing.
var (
	rateAuto    = decimal.RequireFromString("0.05")
	rateHome    = decimal.RequireFromString("0.02")
	rateLife    = decimal.RequireFromString("0.01")
	rateDefault = decimal.RequireFromString("0.03")
)

// Risk multipliers per tier. Unrecognized tiers degrade to the MEDIUM
// multiplier.
var (
	factorLow    = decimal.RequireFromString("0.8")
	factorMedium = decimal.RequireFromString("1.0")
	factorHigh   = decimal.RequireFromString("1.5")
)

// Calculate returns the premium for an insured value as a fixed two-decimal
// string: value × base rate(kind) × risk multiplier(tier).
//
// Only an unparsable insured value is an error; unknown kinds and tiers
// degrade to defaults.
func Calculate(kind, insuredValue, riskTier string) (string, error) {
	value, err := decimal.NewFromString(insuredValue)
	if err != nil {
		return "", errors.Newf(errors.CodeBadRequest, "insured value %q is not a number", insuredValue)
	}

	result := value.Mul(baseRate(kind)).Mul(riskFactor(riskTier))
	return result.StringFixed(2), nil
}

func baseRate(kind string) decimal.Decimal {
	switch kind {
	case "Auto":
		return rateAuto
	case "Home":
		return rateHome
	case "Life":
		return rateLife
	default:
		return rateDefault
	}
}

func riskFactor(tier string) decimal.Decimal {
	switch tier {
	case "LOW":
		return factorLow
	case "HIGH":
		return factorHigh
	case "MEDIUM":
		return factorMedium
	default:
		return factorMedium
	}
}
