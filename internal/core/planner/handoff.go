package planner

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
)

// EditHandoff names the plan the next wizard run should edit
type EditHandoff struct {
	Index int      `json:"index"`
	ID    string   `json:"id,omitempty"`
	Plan  TripPlan `json:"plan"`
}

// HandoffStore keeps the transient edit and view targets of one namespace
type HandoffStore struct {
	store ports.KeyValueStore
}

func NewHandoffStore(store ports.KeyValueStore) *HandoffStore {
	return &HandoffStore{store: store}
}

func (h *HandoffStore) SetEditing(ctx context.Context, handoff EditHandoff) error {
	return h.put(ctx, KeyEditingPlan, handoff)
}

// Editing returns nil when no usable edit handoff exists
func (h *HandoffStore) Editing(ctx context.Context) (*EditHandoff, error) {
	var handoff EditHandoff
	ok, err := h.get(ctx, KeyEditingPlan, &handoff)
	if err != nil || !ok {
		return nil, err
	}
	return &handoff, nil
}

func (h *HandoffStore) ClearEditing(ctx context.Context) error {
	return h.store.Remove(ctx, KeyEditingPlan)
}

func (h *HandoffStore) SetViewing(ctx context.Context, plan TripPlan) error {
	return h.put(ctx, KeyCurrentViewPlan, plan)
}

// Viewing returns nil when no usable view handoff exists
func (h *HandoffStore) Viewing(ctx context.Context) (*TripPlan, error) {
	var plan TripPlan
	ok, err := h.get(ctx, KeyCurrentViewPlan, &plan)
	if err != nil || !ok {
		return nil, err
	}
	return &plan, nil
}

func (h *HandoffStore) ClearViewing(ctx context.Context) error {
	return h.store.Remove(ctx, KeyCurrentViewPlan)
}

func (h *HandoffStore) put(ctx context.Context, key string, value interface{}) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := h.store.Set(ctx, key, string(encoded)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (h *HandoffStore) get(ctx context.Context, key string, target interface{}) (bool, error) {
	raw, err := h.store.Get(ctx, key)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return false, nil
	}
	return true, nil
}
