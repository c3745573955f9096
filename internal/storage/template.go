package storage

// TemplateKind tags the derivation behavior of a template. The legacy data
// keyed these cases on fixed template ids; the kind column replaces that
// dispatch with a named capability.
type TemplateKind string

const (
	// KindStandard derives the amount from the template estimation.
	KindStandard TemplateKind = "standard"
	// KindRentBased derives the amount from the viewing's expected rent,
	// ignoring both the estimation and the units multiplier.
	KindRentBased TemplateKind = "rent_based"
	// KindFlatPlusSurcharge adds a fixed surcharge on top of the estimation.
	KindFlatPlusSurcharge TemplateKind = "flat_plus_surcharge"
)

// ExpenseTemplate is a reusable expense definition line items are created from.
type ExpenseTemplate struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Estimation  *float64     `json:"estimation"`
	Kind        TemplateKind `json:"kind"`
}

// TemplateUpdate holds the fields an admin may change; nil means keep.
// ClearEstimation removes the baseline so the template has no default.
type TemplateUpdate struct {
	Name            *string       `json:"name"`
	Description     *string       `json:"description"`
	Estimation      *float64      `json:"estimation"`
	ClearEstimation bool          `json:"clear_estimation"`
	Kind            *TemplateKind `json:"kind"`
}
