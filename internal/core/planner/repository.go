package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
)

// PlanRepository is the ordered plan list of one user namespace.
// There is no locking across the read-modify-write of a call; two concurrent
// writers for the same user can lose an update.
type PlanRepository struct {
	store ports.KeyValueStore
}

func NewPlanRepository(store ports.KeyValueStore) *PlanRepository {
	return &PlanRepository{store: store}
}

// List returns the stored plans. Missing or malformed data reads as an
// empty list; a record that does not decode is skipped.
func (r *PlanRepository) List(ctx context.Context) ([]TripPlan, error) {
	plans, _, err := r.load(ctx)
	return plans, err
}

// load decodes the stored list record by record and reports how many
// records were skipped
func (r *PlanRepository) load(ctx context.Context) ([]TripPlan, int, error) {
	raw, err := r.store.Get(ctx, KeyTripPlans)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return []TripPlan{}, 0, nil
		}
		return nil, 0, fmt.Errorf("read plans: %w", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return []TripPlan{}, 0, nil
	}

	plans := make([]TripPlan, 0, len(records))
	skipped := 0
	for _, record := range records {
		var plan TripPlan
		if err := json.Unmarshal(record, &plan); err != nil {
			skipped++
			continue
		}
		plans = append(plans, plan)
	}
	return plans, skipped, nil
}

// loadForWrite refuses to hand out a list that would drop stored records
// when written back
func (r *PlanRepository) loadForWrite(ctx context.Context) ([]TripPlan, error) {
	plans, skipped, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		return nil, errors.NewStorageError(
			fmt.Sprintf("%d stored plan(s) could not be decoded", skipped), nil)
	}
	return plans, nil
}

// Append adds plan at the end and returns its index
func (r *PlanRepository) Append(ctx context.Context, plan TripPlan) (int, error) {
	plans, err := r.loadForWrite(ctx)
	if err != nil {
		return 0, err
	}

	index := len(plans)
	if err := r.save(ctx, append(plans, plan)); err != nil {
		return 0, err
	}
	return index, nil
}

// UpdateAt replaces the plan at index. Out-of-range indexes are ignored.
func (r *PlanRepository) UpdateAt(ctx context.Context, index int, plan TripPlan) error {
	plans, err := r.loadForWrite(ctx)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(plans) {
		return nil
	}

	plans[index] = plan
	return r.save(ctx, plans)
}

// RemoveAt deletes the plan at index; later plans move down by one.
// Out-of-range indexes are ignored.
func (r *PlanRepository) RemoveAt(ctx context.Context, index int) error {
	plans, err := r.loadForWrite(ctx)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(plans) {
		return nil
	}

	plans = append(plans[:index], plans[index+1:]...)
	return r.save(ctx, plans)
}

func (r *PlanRepository) FindByID(ctx context.Context, id string) (int, *TripPlan, error) {
	plans, err := r.List(ctx)
	if err != nil {
		return -1, nil, err
	}

	index := indexOf(plans, id)
	if index < 0 {
		return -1, nil, errors.NewNotFoundError("plan not found")
	}
	plan := plans[index]
	return index, &plan, nil
}

func (r *PlanRepository) UpdateByID(ctx context.Context, id string, plan TripPlan) (int, error) {
	plans, err := r.loadForWrite(ctx)
	if err != nil {
		return -1, err
	}

	index := indexOf(plans, id)
	if index < 0 {
		return -1, errors.NewNotFoundError("plan not found")
	}
	plans[index] = plan
	return index, r.save(ctx, plans)
}

func (r *PlanRepository) RemoveByID(ctx context.Context, id string) error {
	plans, err := r.loadForWrite(ctx)
	if err != nil {
		return err
	}

	index := indexOf(plans, id)
	if index < 0 {
		return errors.NewNotFoundError("plan not found")
	}
	plans = append(plans[:index], plans[index+1:]...)
	return r.save(ctx, plans)
}

func (r *PlanRepository) save(ctx context.Context, plans []TripPlan) error {
	encoded, err := json.Marshal(plans)
	if err != nil {
		return fmt.Errorf("encode plans: %w", err)
	}
	if err := r.store.Set(ctx, KeyTripPlans, string(encoded)); err != nil {
		return fmt.Errorf("write plans: %w", err)
	}
	return nil
}

func indexOf(plans []TripPlan, id string) int {
	if id == "" {
		return -1
	}
	for i, plan := range plans {
		if plan.ID == id {
			return i
		}
	}
	return -1
}

// Stats counts plans, plans starting strictly after now, and distinct
// non-empty destination names.
func Stats(plans []TripPlan, now time.Time) PlanStats {
	stats := PlanStats{Total: len(plans)}
	destinations := make(map[string]struct{})

	for _, plan := range plans {
		if !plan.StartDate.IsZero() && plan.StartDate.Time().After(now) {
			stats.Upcoming++
		}
		if plan.Destination != nil && plan.Destination.Name != "" {
			destinations[plan.Destination.Name] = struct{}{}
		}
	}

	stats.UniqueDestinations = len(destinations)
	return stats
}
