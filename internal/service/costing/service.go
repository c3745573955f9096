package costing

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"vue-estate/internal/storage"
)

type CostStorage interface {
	GetViewing(ctx context.Context, id int64) (*storage.Viewing, error)
	GetTemplate(ctx context.Context, id int64) (*storage.ExpenseTemplate, error)
	ListTemplates(ctx context.Context) ([]*storage.ExpenseTemplate, error)
	ListLineItems(ctx context.Context, viewingID int64) ([]*storage.LineItem, error)
	GetLineItem(ctx context.Context, id int64) (*storage.LineItem, error)
	InsertLineItem(ctx context.Context, item storage.NewLineItem) (int64, error)
	InsertLineItems(ctx context.Context, items []storage.NewLineItem) error
	UpdateLineItem(ctx context.Context, id int64, update storage.LineItemUpdate) error
	DeleteLineItem(ctx context.Context, id int64) error
}

type CostService struct {
	storage CostStorage
}

func NewCostService(storage CostStorage) *CostService {
	return &CostService{storage: storage}
}

// ListItems returns all line items of a viewing, newest last.
func (s *CostService) ListItems(ctx context.Context, viewingID int64) ([]*storage.LineItem, error) {
	const op = "service.costing.ListItems"

	if _, err := s.storage.GetViewing(ctx, viewingID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := s.storage.ListLineItems(ctx, viewingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// CreateItem inserts a single line item after checking the owning viewing and
// the referenced template.
func (s *CostService) CreateItem(ctx context.Context, item storage.NewLineItem) (int64, error) {
	const op = "service.costing.CreateItem"

	if err := validateItemFields(item.Description, item.Amount); err != nil {
		return 0, err
	}

	viewing, err := s.storage.GetViewing(ctx, item.ViewingID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if viewing.Archived {
		return 0, fmt.Errorf("%s: viewing %d is archived: %w", op, viewing.ID, storage.ErrConflict)
	}

	if _, err := s.storage.GetTemplate(ctx, item.TemplateID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	item.Description = strings.TrimSpace(item.Description)

	id, err := s.storage.InsertLineItem(ctx, item)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// UpdateItem changes the description and/or amount of an existing item. The
// item id and creation timestamp are never touched.
func (s *CostService) UpdateItem(ctx context.Context, id int64, update storage.LineItemUpdate) error {
	const op = "service.costing.UpdateItem"

	if update.Description != nil || update.Amount != nil {
		desc := "x"
		if update.Description != nil {
			desc = *update.Description
		}
		amount := float64(0)
		if update.Amount != nil {
			amount = *update.Amount
		}
		if err := validateItemFields(desc, amount); err != nil {
			return err
		}
	}

	if err := s.guardItemViewing(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateLineItem(ctx, id, update); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteItem removes a line item, refusing when the owning viewing is
// archived.
func (s *CostService) DeleteItem(ctx context.Context, id int64) error {
	const op = "service.costing.DeleteItem"

	if err := s.guardItemViewing(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.DeleteLineItem(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *CostService) guardItemViewing(ctx context.Context, itemID int64) error {
	item, err := s.storage.GetLineItem(ctx, itemID)
	if err != nil {
		return err
	}

	viewing, err := s.storage.GetViewing(ctx, item.ViewingID)
	if err != nil {
		return err
	}
	if viewing.Archived {
		return fmt.Errorf("viewing %d is archived: %w", viewing.ID, storage.ErrConflict)
	}
	return nil
}

func validateItemFields(description string, amount float64) error {
	if strings.TrimSpace(description) == "" {
		return storage.NewValidationError("description", "must not be empty")
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return storage.NewValidationError("amount", "must be a finite number")
	}
	return nil
}

// SubOpFailure records one reconcile sub-operation that did not apply.
type SubOpFailure struct {
	TemplateID int64  `json:"template_id"`
	Op         string `json:"op"`
	Error      string `json:"error"`
}

// ReconcileOutcome is the result of a bulk reconcile: the refreshed line
// items plus the sub-operations that failed. Applied sub-operations are not
// rolled back; re-running the same assignment set converges.
type ReconcileOutcome struct {
	Items  []*storage.LineItem `json:"line_items"`
	Failed []SubOpFailure      `json:"failed"`
}

// Reconcile matches the desired assignments against the viewing's existing
// line items: a template that already has an item gets that item updated in
// place, the rest are inserted as one batch. The sub-operations run
// concurrently; they target disjoint records so there is no write-write race.
func (s *CostService) Reconcile(ctx context.Context, viewingID int64, assignments []storage.Assignment) (*ReconcileOutcome, error) {
	const op = "service.costing.Reconcile"

	for i, a := range assignments {
		if err := validateItemFields(a.Description, a.Amount); err != nil {
			return nil, err
		}
		// Same text normalization as the single-item write path.
		assignments[i].Description = strings.TrimSpace(a.Description)
	}

	viewing, err := s.storage.GetViewing(ctx, viewingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if viewing.Archived {
		return nil, fmt.Errorf("%s: viewing %d is archived: %w", op, viewing.ID, storage.ErrConflict)
	}

	existing, err := s.storage.ListLineItems(ctx, viewingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// At most one existing item is treated as the representative for a
	// template; the first one wins, extras are left untouched.
	byTemplate := make(map[int64]int64, len(existing))
	for _, item := range existing {
		if _, ok := byTemplate[item.TemplateID]; !ok {
			byTemplate[item.TemplateID] = item.ID
		}
	}

	var (
		creates []storage.NewLineItem
		mu      sync.Mutex
		failed  []SubOpFailure
	)

	var g errgroup.Group
	for _, a := range assignments {
		itemID, ok := byTemplate[a.TemplateID]
		if !ok {
			creates = append(creates, storage.NewLineItem{
				ViewingID:   viewingID,
				TemplateID:  a.TemplateID,
				Description: a.Description,
				Amount:      a.Amount,
			})
			continue
		}

		a := a
		g.Go(func() error {
			update := storage.LineItemUpdate{Description: &a.Description, Amount: &a.Amount}
			if err := s.storage.UpdateLineItem(ctx, itemID, update); err != nil {
				mu.Lock()
				failed = append(failed, SubOpFailure{TemplateID: a.TemplateID, Op: "update", Error: err.Error()})
				mu.Unlock()
			}
			return nil
		})
	}

	if len(creates) > 0 {
		g.Go(func() error {
			if err := s.storage.InsertLineItems(ctx, creates); err != nil {
				mu.Lock()
				for _, c := range creates {
					failed = append(failed, SubOpFailure{TemplateID: c.TemplateID, Op: "create", Error: err.Error()})
				}
				mu.Unlock()
			}
			return nil
		})
	}

	// Failures are reported per sub-operation, so the goroutines never
	// return an error themselves.
	_ = g.Wait()

	items, err := s.storage.ListLineItems(ctx, viewingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &ReconcileOutcome{Items: items, Failed: failed}, nil
}

// Suggestion is one pre-filled assignment offered to the UI before a bulk
// reconcile: the template's default description and the derived amount,
// already scaled by the units the description encodes.
type Suggestion struct {
	TemplateID  int64    `json:"template_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Amount      *float64 `json:"amount"`
}

// Suggestions derives a pre-fill for every template in the catalog against
// the viewing's current rent. A units marker in the template's default
// description multiplies the derived base, so the suggested amount always
// agrees with the description it ships with. Templates with no derivable
// amount come back with a nil amount for manual entry.
func (s *CostService) Suggestions(ctx context.Context, viewingID int64) ([]Suggestion, error) {
	const op = "service.costing.Suggestions"

	var (
		viewing   *storage.Viewing
		templates []*storage.ExpenseTemplate
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		viewing, err = s.storage.GetViewing(gCtx, viewingID)
		if err != nil {
			return fmt.Errorf("viewing: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		templates, err = s.storage.ListTemplates(gCtx)
		if err != nil {
			return fmt.Errorf("templates: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	suggestions := make([]Suggestion, 0, len(templates))
	for _, tmpl := range templates {
		units := ParseUnits(tmpl.Description)
		suggestions = append(suggestions, Suggestion{
			TemplateID:  tmpl.ID,
			Name:        tmpl.Name,
			Description: tmpl.Description,
			Amount:      FinalAmount(tmpl, viewing.ExpectedMinimalRent, units),
		})
	}
	return suggestions, nil
}

// Breakdown is the full total-cost figure for one viewing: the itemized
// acquisition fees and their subtotal, the line-item subtotal, and the final
// total. Price is part of the total on top of the fees; the purchase price
// itself is cash the buyer has to plan for.
type Breakdown struct {
	Fees           []FeeLine           `json:"fees"`
	FirstSubtotal  float64             `json:"first_subtotal"`
	SecondSubtotal float64             `json:"second_subtotal"`
	Price          float64             `json:"price"`
	Total          float64             `json:"total"`
	Items          []*storage.LineItem `json:"line_items"`
}

// TotalCost recomputes the breakdown from scratch; nothing is cached.
func (s *CostService) TotalCost(ctx context.Context, viewingID int64) (*Breakdown, error) {
	const op = "service.costing.TotalCost"

	var (
		viewing *storage.Viewing
		items   []*storage.LineItem
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		viewing, err = s.storage.GetViewing(gCtx, viewingID)
		if err != nil {
			return fmt.Errorf("viewing: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		items, err = s.storage.ListLineItems(gCtx, viewingID)
		if err != nil {
			return fmt.Errorf("line items: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var price, rent float64
	if viewing.Price != nil {
		price = *viewing.Price
	}
	if viewing.ExpectedMinimalRent != nil {
		rent = *viewing.ExpectedMinimalRent
	}

	fees := AcquisitionFees(price, rent)
	first := FeesSubtotal(fees)

	var second float64
	for _, item := range items {
		second += item.Amount
	}

	return &Breakdown{
		Fees:           fees,
		FirstSubtotal:  first,
		SecondSubtotal: second,
		Price:          price,
		Total:          first + second + price,
		Items:          items,
	}, nil
}
