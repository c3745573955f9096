package storage

import "time"

// LineItem is one concrete expense tied to a viewing and a template. The
// description may carry a trailing ". <n> units" marker; the amount stored
// here is already scaled by that multiplier.
type LineItem struct {
	ID          int64     `json:"id"`
	ViewingID   int64     `json:"viewing_id"`
	TemplateID  int64     `json:"template_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	CreatedAT   time.Time `json:"created_at"`
}

// NewLineItem carries the fields of a line item about to be inserted.
type NewLineItem struct {
	ViewingID   int64   `json:"viewing_id"`
	TemplateID  int64   `json:"template_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// LineItemUpdate holds the mutable fields of an existing item; nil means keep.
type LineItemUpdate struct {
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
}

// Assignment is one desired (template, description, amount) tuple handed to
// bulk reconciliation.
type Assignment struct {
	TemplateID  int64   `json:"template_id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}
