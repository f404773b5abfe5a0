// Package valueobject contains domain value objects for the MCA analytics system.
package valueobject

// RiskCategory is the 3-bucket classification of a customer risk score.
type RiskCategory string

const (
	RiskCategoryLow    RiskCategory = "Low Risk"
	RiskCategoryMedium RiskCategory = "Medium Risk"
	RiskCategoryHigh   RiskCategory = "High Risk"
)

// Risk bucket thresholds: score <= 0.2 is Low, <= 0.5 is Medium, above is High.
const (
	riskLowMax    = 0.2
	riskMediumMax = 0.5
)

// RiskWeights contains the weighting of the customer risk score formula.
type RiskWeights struct {
	PaymentRatioWeight    float64 // weight on (1 - payment ratio)
	RelativeBalanceWeight float64 // weight on outstanding / max invoice volume
	LowPaymentPenalty     float64 // flat penalty below the low-payment threshold
	LowPaymentThreshold   float64
}

// DefaultRiskWeights returns the published scoring weights:
// 40% payment ratio, 30% relative balance, 30% low-payment penalty.
func DefaultRiskWeights() RiskWeights {
	return RiskWeights{
		PaymentRatioWeight:    0.4,
		RelativeBalanceWeight: 0.3,
		LowPaymentPenalty:     0.3,
		LowPaymentThreshold:   0.5,
	}
}

// Score computes the weighted risk score from a customer's payment ratio and
// relative outstanding balance. When both the relative balance and the
// penalty term are large the result exceeds 1.0; callers must not assume a
// [0,1] bound. This is a known characteristic of the published formula and
// is preserved deliberately.
func (w RiskWeights) Score(paymentRatio, relativeBalance float64) float64 {
	score := w.PaymentRatioWeight*(1-paymentRatio) + w.RelativeBalanceWeight*relativeBalance
	if paymentRatio < w.LowPaymentThreshold {
		score += w.LowPaymentPenalty
	}
	return score
}

// CategorizeRisk maps a risk score to exactly one bucket. The mapping applies
// to out-of-range scores too: anything above the medium cutoff is High.
func CategorizeRisk(score float64) RiskCategory {
	switch {
	case score <= riskLowMax:
		return RiskCategoryLow
	case score <= riskMediumMax:
		return RiskCategoryMedium
	}
	return RiskCategoryHigh
}
