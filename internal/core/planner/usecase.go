package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
	"github.com/kiervincent5/travel-planner/pkg/validation"
)

const weatherUnits = "metric"

// TravelService is the lookup surface the wizard needs
type TravelService interface {
	Geocode(ctx context.Context, address string) (*ports.GeoLocation, error)
	CurrentWeather(ctx context.Context, query ports.WeatherQuery) (*ports.WeatherData, error)
	SearchFlights(ctx context.Context, query ports.FlightSearchQuery) ([]ports.FlightOffer, error)
}

// PlaceSelection is a place-search result chosen by the user
type PlaceSelection struct {
	Description string `json:"description"`
	PrimaryName string `json:"primaryName"`
	PlaceID     string `json:"placeId"`
}

// PlanEntry is a stored plan with its current list position
type PlanEntry struct {
	Index int `json:"index"`
	TripPlan
}

// FinalizeResult reports where the finalized plan was written
type FinalizeResult struct {
	Index   int      `json:"index"`
	Updated bool     `json:"updated"`
	Plan    TripPlan `json:"plan"`
}

type UseCase struct {
	stores  ports.UserStoreFactory
	travel  TravelService
	logger  ports.Logger
	metrics ports.MetricsRecorder
	now     func() time.Time
	newID   func() string
}

type UseCaseDependencies struct {
	UserStores  ports.UserStoreFactory
	Travel      TravelService
	Logger      ports.Logger
	Metrics     ports.MetricsRecorder
	Clock       func() time.Time
	IDGenerator func() string
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.UserStores == nil {
		return nil, errors.NewValidationError("user stores are required")
	}
	if deps.Travel == nil {
		return nil, errors.NewValidationError("travel service is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	uc := &UseCase{
		stores:  deps.UserStores,
		travel:  deps.Travel,
		logger:  deps.Logger,
		metrics: deps.Metrics,
		now:     deps.Clock,
		newID:   deps.IDGenerator,
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.newID == nil {
		uc.newID = uuid.NewString
	}
	return uc, nil
}

// StartWizard begins a new draft, pre-populated from the edit handoff when
// one is pending. Any previous draft is replaced.
func (uc *UseCase) StartWizard(ctx context.Context, user SessionUser) (*Draft, error) {
	store := uc.stores.ForUser(user.ID)

	handoff, err := NewHandoffStore(store).Editing(ctx)
	if err != nil {
		return nil, err
	}

	draft := NewDraft(uc.newID())
	if handoff != nil {
		draft = NewEditDraft(draft.ID, *handoff)
		uc.logger.Debug("Editing existing plan",
			ports.F("user_id", user.ID),
			ports.F("index", handoff.Index),
			ports.F("plan_id", draft.EditingPlanID))
	}

	if err := saveDraft(ctx, store, draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (uc *UseCase) GetDraft(ctx context.Context, user SessionUser) (*Draft, error) {
	draft, err := loadDraft(ctx, uc.stores.ForUser(user.ID))
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// DiscardWizard drops the draft and any pending edit handoff
func (uc *UseCase) DiscardWizard(ctx context.Context, user SessionUser) error {
	store := uc.stores.ForUser(user.ID)
	if err := store.Remove(ctx, KeyPlannerDraft); err != nil {
		return fmt.Errorf("remove draft: %w", err)
	}
	return NewHandoffStore(store).ClearEditing(ctx)
}

func (uc *UseCase) Advance(ctx context.Context, user SessionUser, step Step, form *DetailsForm) (*Draft, error) {
	store := uc.stores.ForUser(user.ID)
	draft, err := loadDraft(ctx, store)
	if err != nil {
		return nil, err
	}

	next, err := Transition(draft, step, form)
	if err != nil {
		uc.metrics.RecordWizardTransition(draft.CurrentStep.String(), step.String(), "rejected")
		return nil, err
	}
	uc.metrics.RecordWizardTransition(draft.CurrentStep.String(), step.String(), "ok")

	if err := saveDraft(ctx, store, next); err != nil {
		return nil, err
	}
	return &next, nil
}

// SelectDestination geocodes the chosen place and snapshots its weather.
// A failed weather lookup still attaches the destination.
func (uc *UseCase) SelectDestination(ctx context.Context, user SessionUser, place PlaceSelection) (*Draft, error) {
	store := uc.stores.ForUser(user.ID)
	draft, err := loadDraft(ctx, store)
	if err != nil {
		return nil, err
	}
	if err := requireStep(draft, StepDestination); err != nil {
		return nil, err
	}

	address := strings.TrimSpace(place.Description)
	if address == "" {
		return nil, errors.NewValidationError("Please enter a destination")
	}

	location, err := uc.travel.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, errors.NewNotFoundError("Location not found")
	}

	destination := Destination{
		Name:        primaryName(place),
		FullAddress: fullAddress(address, location.FormattedAddress),
		Lat:         location.Lat,
		Lng:         location.Lng,
	}

	var snapshot *WeatherSnapshot
	weather, err := uc.travel.CurrentWeather(ctx, ports.WeatherQuery{
		Lat:   location.Lat,
		Lng:   location.Lng,
		Units: weatherUnits,
	})
	if err != nil {
		uc.logger.Warn("Weather unavailable for destination",
			ports.F("destination", destination.Name),
			ports.F("error", err))
	} else if weather != nil {
		snapshot = &WeatherSnapshot{
			Temp:        weather.Temp,
			FeelsLike:   weather.FeelsLike,
			Humidity:    weather.Humidity,
			Description: weather.Description,
			WindSpeed:   weather.WindSpeed,
			Pressure:    weather.Pressure,
		}
	}

	next, err := AttachDestination(draft, destination, snapshot)
	if err != nil {
		return nil, err
	}
	if err := saveDraft(ctx, store, next); err != nil {
		return nil, err
	}
	return &next, nil
}

func primaryName(place PlaceSelection) string {
	if name := strings.TrimSpace(place.PrimaryName); name != "" {
		return name
	}
	first, _, _ := strings.Cut(place.Description, ",")
	return strings.TrimSpace(first)
}

// fullAddress keeps the text the user picked; the geocoder's form is the fallback
func fullAddress(description, formatted string) string {
	if description != "" {
		return description
	}
	return formatted
}

// SearchFlights looks up offers for the draft's start date and headcount
func (uc *UseCase) SearchFlights(ctx context.Context, user SessionUser, origin, destination string) ([]ports.FlightOffer, error) {
	draft, err := loadDraft(ctx, uc.stores.ForUser(user.ID))
	if err != nil {
		return nil, err
	}
	if err := requireStep(draft, StepFlight); err != nil {
		return nil, err
	}

	origin = strings.ToUpper(strings.TrimSpace(origin))
	destination = strings.ToUpper(strings.TrimSpace(destination))
	if origin == "" || destination == "" {
		return nil, errors.NewValidationError("Please enter both origin and destination airports")
	}
	if draft.Plan.StartDate.IsZero() {
		return nil, errors.NewValidationError("Please set trip dates in Step 1")
	}

	return uc.travel.SearchFlights(ctx, ports.FlightSearchQuery{
		Origin:      origin,
		Destination: destination,
		Date:        draft.Plan.StartDate.String(),
		Adults:      draft.Plan.Headcount(),
	})
}

func (uc *UseCase) SelectFlight(ctx context.Context, user SessionUser, flight Flight) (*Draft, error) {
	store := uc.stores.ForUser(user.ID)
	draft, err := loadDraft(ctx, store)
	if err != nil {
		return nil, err
	}
	if err := requireStep(draft, StepFlight); err != nil {
		return nil, err
	}

	if !validation.IsValidAirportCode(strings.TrimSpace(flight.Origin)) ||
		!validation.IsValidAirportCode(strings.TrimSpace(flight.Destination)) {
		return nil, errors.NewValidationError("flight origin and destination must be 3-letter airport codes")
	}
	if strings.TrimSpace(flight.FlightNumber) == "" {
		return nil, errors.NewValidationError("flight number is required")
	}

	next, err := AttachFlight(draft, flight)
	if err != nil {
		return nil, err
	}
	if err := saveDraft(ctx, store, next); err != nil {
		return nil, err
	}
	return &next, nil
}

func (uc *UseCase) ClearFlight(ctx context.Context, user SessionUser) (*Draft, error) {
	store := uc.stores.ForUser(user.ID)
	draft, err := loadDraft(ctx, store)
	if err != nil {
		return nil, err
	}

	next, err := DetachFlight(draft)
	if err != nil {
		return nil, err
	}
	if err := saveDraft(ctx, store, next); err != nil {
		return nil, err
	}
	return &next, nil
}

// Review renders the draft as it would be saved
func (uc *UseCase) Review(ctx context.Context, user SessionUser) (*Document, error) {
	draft, err := loadDraft(ctx, uc.stores.ForUser(user.ID))
	if err != nil {
		return nil, err
	}
	if err := requireStep(draft, StepReview); err != nil {
		return nil, err
	}

	doc := Render(draft.Plan, &user, uc.now())
	return &doc, nil
}

// Finalize writes the reviewed draft to the plan list. An edited plan is
// replaced in place; a plan that was deleted meanwhile is reported as not
// found instead of being re-added.
func (uc *UseCase) Finalize(ctx context.Context, user SessionUser) (*FinalizeResult, error) {
	store := uc.stores.ForUser(user.ID)
	draft, err := loadDraft(ctx, store)
	if err != nil {
		return nil, err
	}
	if err := requireStep(draft, StepReview); err != nil {
		return nil, err
	}

	repo := NewPlanRepository(store)
	result := &FinalizeResult{}

	switch {
	case draft.EditingPlanID != "":
		_, existing, err := repo.FindByID(ctx, draft.EditingPlanID)
		if err != nil {
			return nil, err
		}
		plan, _, err := Complete(draft, uc.newID(), existing, uc.now())
		if err != nil {
			return nil, err
		}
		index, err := repo.UpdateByID(ctx, draft.EditingPlanID, plan)
		if err != nil {
			return nil, err
		}
		result.Index, result.Updated, result.Plan = index, true, plan

	case draft.EditingPlanIndex != nil:
		index := *draft.EditingPlanIndex
		plans, err := repo.List(ctx)
		if err != nil {
			return nil, err
		}
		// A plan with an id in that slot means the legacy record is gone
		if index < 0 || index >= len(plans) || plans[index].ID != "" {
			return nil, errors.NewNotFoundError("plan not found")
		}
		plan, _, err := Complete(draft, uc.newID(), &plans[index], uc.now())
		if err != nil {
			return nil, err
		}
		if err := repo.UpdateAt(ctx, index, plan); err != nil {
			return nil, err
		}
		result.Index, result.Updated, result.Plan = index, true, plan

	default:
		plan, _, err := Complete(draft, uc.newID(), nil, uc.now())
		if err != nil {
			return nil, err
		}
		index, err := repo.Append(ctx, plan)
		if err != nil {
			return nil, err
		}
		result.Index, result.Plan = index, plan
	}

	operation := "create"
	if result.Updated {
		operation = "update"
	}
	uc.metrics.RecordPlanWrite(operation)
	uc.metrics.RecordWizardTransition(StepReview.String(), StepFinalized.String(), "ok")

	// The draft content is cleared; only the terminal marker stays so later
	// calls on it are rejected until a new wizard starts.
	if err := saveDraft(ctx, store, Draft{ID: draft.ID, CurrentStep: StepFinalized}); err != nil {
		return nil, err
	}
	if err := NewHandoffStore(store).ClearEditing(ctx); err != nil {
		return nil, err
	}

	uc.logger.Info("Trip plan saved",
		ports.F("user_id", user.ID),
		ports.F("plan_id", result.Plan.ID),
		ports.F("operation", operation))
	return result, nil
}

func (uc *UseCase) ListPlans(ctx context.Context, user SessionUser) ([]PlanEntry, error) {
	plans, err := NewPlanRepository(uc.stores.ForUser(user.ID)).List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]PlanEntry, len(plans))
	for i, plan := range plans {
		entries[i] = PlanEntry{Index: i, TripPlan: plan}
	}
	return entries, nil
}

func (uc *UseCase) Stats(ctx context.Context, user SessionUser) (PlanStats, error) {
	plans, err := NewPlanRepository(uc.stores.ForUser(user.ID)).List(ctx)
	if err != nil {
		return PlanStats{}, err
	}
	return Stats(plans, uc.now()), nil
}

// GetPlan looks a plan up by id, or by index for plans stored without one
func (uc *UseCase) GetPlan(ctx context.Context, user SessionUser, ref string) (*PlanEntry, error) {
	plans, err := NewPlanRepository(uc.stores.ForUser(user.ID)).List(ctx)
	if err != nil {
		return nil, err
	}
	index, err := resolvePlan(plans, ref)
	if err != nil {
		return nil, err
	}
	return &PlanEntry{Index: index, TripPlan: plans[index]}, nil
}

func (uc *UseCase) DeletePlan(ctx context.Context, user SessionUser, ref string) error {
	repo := NewPlanRepository(uc.stores.ForUser(user.ID))
	plans, err := repo.List(ctx)
	if err != nil {
		return err
	}
	index, err := resolvePlan(plans, ref)
	if err != nil {
		return err
	}

	if id := plans[index].ID; id != "" {
		err = repo.RemoveByID(ctx, id)
	} else {
		err = repo.RemoveAt(ctx, index)
	}
	if err != nil {
		return err
	}

	uc.metrics.RecordPlanWrite("delete")

	if id := plans[index].ID; id != "" {
		handoffs := NewHandoffStore(uc.stores.ForUser(user.ID))
		viewing, err := handoffs.Viewing(ctx)
		if err != nil {
			return err
		}
		if viewing != nil && viewing.ID == id {
			return handoffs.ClearViewing(ctx)
		}
	}
	return nil
}

// EditPlan records the edit handoff picked up by the next StartWizard
func (uc *UseCase) EditPlan(ctx context.Context, user SessionUser, ref string) (*EditHandoff, error) {
	entry, err := uc.GetPlan(ctx, user, ref)
	if err != nil {
		return nil, err
	}

	handoff := EditHandoff{Index: entry.Index, ID: entry.ID, Plan: entry.TripPlan}
	if err := NewHandoffStore(uc.stores.ForUser(user.ID)).SetEditing(ctx, handoff); err != nil {
		return nil, err
	}
	return &handoff, nil
}

// ViewPlan records the plan the itinerary view should show
func (uc *UseCase) ViewPlan(ctx context.Context, user SessionUser, ref string) (*TripPlan, error) {
	entry, err := uc.GetPlan(ctx, user, ref)
	if err != nil {
		return nil, err
	}

	plan := entry.TripPlan
	if err := NewHandoffStore(uc.stores.ForUser(user.ID)).SetViewing(ctx, plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (uc *UseCase) CurrentViewPlan(ctx context.Context, user SessionUser) (*Document, *TripPlan, error) {
	plan, err := NewHandoffStore(uc.stores.ForUser(user.ID)).Viewing(ctx)
	if err != nil {
		return nil, nil, err
	}
	if plan == nil {
		return nil, nil, errors.NewNotFoundError("No Plan to Display")
	}

	doc := Render(*plan, &user, uc.now())
	return &doc, plan, nil
}

func (uc *UseCase) PlanSummary(ctx context.Context, user SessionUser, ref string) (*Document, *TripPlan, error) {
	entry, err := uc.GetPlan(ctx, user, ref)
	if err != nil {
		return nil, nil, err
	}

	plan := entry.TripPlan
	doc := Render(plan, &user, uc.now())
	return &doc, &plan, nil
}

func resolvePlan(plans []TripPlan, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if index := indexOf(plans, ref); index >= 0 {
		return index, nil
	}
	if index, err := strconv.Atoi(ref); err == nil && index >= 0 && index < len(plans) && plans[index].ID == "" {
		return index, nil
	}
	return -1, errors.NewNotFoundError("plan not found")
}

func loadDraft(ctx context.Context, store ports.KeyValueStore) (Draft, error) {
	raw, err := store.Get(ctx, KeyPlannerDraft)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return Draft{}, errors.NewNotFoundError("no trip plan in progress")
		}
		return Draft{}, fmt.Errorf("read draft: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return Draft{}, errors.NewNotFoundError("no trip plan in progress")
	}
	return draft, nil
}

func saveDraft(ctx context.Context, store ports.KeyValueStore, draft Draft) error {
	encoded, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := store.Set(ctx, KeyPlannerDraft, string(encoded)); err != nil {
		return fmt.Errorf("write draft: %w", err)
	}
	return nil
}
