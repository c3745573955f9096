package costing

// FeeLine is one named component of the fixed acquisition cost.
type FeeLine struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

const agencyBaseFee = 500

// AcquisitionFees computes the six fixed acquisition-cost components from the
// viewing price and expected rent. Absent values are passed as 0. Amounts are
// kept at full precision; display rounding happens at the HTTP boundary.
func AcquisitionFees(price, rent float64) []FeeLine {
	return []FeeLine{
		{Label: "Purchase tax", Amount: price * 0.0309},
		{Label: "Lawyer fee", Amount: atLeast(price*0.0124, 1240)},
		{Label: "Notary fee", Amount: atLeast(price*0.0124, 1240)},
		{Label: "Registration fee", Amount: price * 0.0065},
		{Label: "Finding tenant", Amount: rent},
		{Label: "Agency fee", Amount: atLeast(price*0.038, 3800) + agencyBaseFee},
	}
}

// FeesSubtotal sums the acquisition fee components.
func FeesSubtotal(fees []FeeLine) float64 {
	var sum float64
	for _, f := range fees {
		sum += f.Amount
	}
	return sum
}

func atLeast(v, floor float64) float64 {
	if v < floor {
		return floor
	}
	return v
}
