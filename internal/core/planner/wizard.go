package planner

import (
	"strings"
	"time"

	"github.com/kiervincent5/travel-planner/pkg/errors"
)

// Step is the wizard cursor
type Step int

const (
	StepDetails Step = iota + 1
	StepDestination
	StepFlight
	StepReview
	StepFinalized
)

func (s Step) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepDestination:
		return "destination"
	case StepFlight:
		return "flight"
	case StepReview:
		return "review"
	case StepFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// IsWizardStep reports whether s is one of the four navigable steps
func (s Step) IsWizardStep() bool {
	return s >= StepDetails && s <= StepReview
}

// DetailsForm carries the step 1 fields as submitted
type DetailsForm struct {
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Travelers int    `json:"travelers"`
	Budget    string `json:"budget"`
	Notes     string `json:"notes"`
}

// Draft is an in-progress plan
type Draft struct {
	ID               string   `json:"id"`
	CurrentStep      Step     `json:"currentStep"`
	EditingPlanIndex *int     `json:"editingPlanIndex,omitempty"`
	EditingPlanID    string   `json:"editingPlanId,omitempty"`
	Plan             TripPlan `json:"plan"`
}

func NewDraft(id string) Draft {
	return Draft{
		ID:          id,
		CurrentStep: StepDetails,
		Plan:        TripPlan{Travelers: 1},
	}
}

// NewEditDraft pre-populates a draft from an edit handoff
func NewEditDraft(id string, handoff EditHandoff) Draft {
	index := handoff.Index
	plan := handoff.Plan
	plan.CreatedAt = nil
	if plan.Travelers < 1 {
		plan.Travelers = 1
	}

	editingID := handoff.ID
	if editingID == "" {
		editingID = handoff.Plan.ID
	}

	return Draft{
		ID:               id,
		CurrentStep:      StepDetails,
		EditingPlanIndex: &index,
		EditingPlanID:    editingID,
		Plan:             plan,
	}
}

func (d Draft) IsEditing() bool {
	return d.EditingPlanIndex != nil
}

func (d Draft) IsFinalized() bool {
	return d.CurrentStep == StepFinalized
}

// Transition moves the draft to the requested step. Moving back is always
// allowed. Moving forward goes one step at a time and requires the current
// step to validate. On Details the form (or, when nil, the draft's own
// details) is validated and copied into the draft. A rejected transition
// returns the draft unchanged together with the error.
func Transition(draft Draft, requested Step, form *DetailsForm) (Draft, error) {
	if draft.IsFinalized() {
		return draft, errors.NewInvalidStateError("this plan has already been saved; start a new plan")
	}
	if !requested.IsWizardStep() {
		return draft, errors.NewValidationError("step must be between 1 and 4")
	}

	switch {
	case requested == draft.CurrentStep:
		return draft, nil
	case requested < draft.CurrentStep:
		draft.CurrentStep = requested
		return draft, nil
	case requested > draft.CurrentStep+1:
		return draft, errors.NewValidationError("steps must be completed in order")
	}

	next := draft
	switch draft.CurrentStep {
	case StepDetails:
		if form == nil {
			form = formFromPlan(draft.Plan)
		}
		plan, err := applyDetails(draft.Plan, *form)
		if err != nil {
			return draft, err
		}
		next.Plan = plan
	case StepDestination:
		if draft.Plan.Destination == nil {
			return draft, errors.NewValidationError("Please select a destination")
		}
	case StepFlight:
	}

	next.CurrentStep = requested
	return next, nil
}

// ValidateDetails checks the step 1 rules and returns the parsed dates
func ValidateDetails(form DetailsForm) (Date, Date, error) {
	if strings.TrimSpace(form.Title) == "" {
		return Date{}, Date{}, errors.NewValidationError("Please enter a trip title")
	}

	start, err := ParseDate(form.StartDate)
	if err != nil {
		return Date{}, Date{}, errors.NewValidationError("start date must be formatted YYYY-MM-DD")
	}
	end, err := ParseDate(form.EndDate)
	if err != nil {
		return Date{}, Date{}, errors.NewValidationError("end date must be formatted YYYY-MM-DD")
	}
	if start.IsZero() || end.IsZero() {
		return Date{}, Date{}, errors.NewValidationError("Please select start and end dates")
	}
	if end.Before(start) {
		return Date{}, Date{}, errors.NewValidationError("End date must be after start date")
	}
	if form.Travelers < 0 {
		return Date{}, Date{}, errors.NewValidationError("travelers must be at least 1")
	}
	return start, end, nil
}

func applyDetails(plan TripPlan, form DetailsForm) (TripPlan, error) {
	start, end, err := ValidateDetails(form)
	if err != nil {
		return plan, err
	}

	plan.Title = strings.TrimSpace(form.Title)
	plan.StartDate = start
	plan.EndDate = end
	plan.Travelers = TravelerCount(form.Travelers)
	if plan.Travelers < 1 {
		plan.Travelers = 1
	}
	plan.Budget = strings.TrimSpace(form.Budget)
	plan.Notes = strings.TrimSpace(form.Notes)
	return plan, nil
}

func formFromPlan(plan TripPlan) *DetailsForm {
	return &DetailsForm{
		Title:     plan.Title,
		StartDate: plan.StartDate.String(),
		EndDate:   plan.EndDate.String(),
		Travelers: int(plan.Travelers),
		Budget:    plan.Budget,
		Notes:     plan.Notes,
	}
}

// AttachDestination sets the destination and its weather snapshot. Only
// valid while on the Destination step.
func AttachDestination(draft Draft, destination Destination, weather *WeatherSnapshot) (Draft, error) {
	if err := requireStep(draft, StepDestination); err != nil {
		return draft, err
	}
	draft.Plan.Destination = &destination
	draft.Plan.Weather = weather
	return draft, nil
}

// AttachFlight sets the chosen flight with its route uppercased. Only valid
// while on the Flight step.
func AttachFlight(draft Draft, flight Flight) (Draft, error) {
	if err := requireStep(draft, StepFlight); err != nil {
		return draft, err
	}
	flight.Origin = strings.ToUpper(strings.TrimSpace(flight.Origin))
	flight.Destination = strings.ToUpper(strings.TrimSpace(flight.Destination))
	draft.Plan.Flight = &flight
	return draft, nil
}

// DetachFlight drops the chosen flight; the flight is optional
func DetachFlight(draft Draft) (Draft, error) {
	if err := requireStep(draft, StepFlight); err != nil {
		return draft, err
	}
	draft.Plan.Flight = nil
	return draft, nil
}

// Complete returns the record to persist for a draft on the Review step and
// the draft in its terminal state. existing is the stored record being
// edited, if any; its id and creation time are kept.
func Complete(draft Draft, newID string, existing *TripPlan, now time.Time) (TripPlan, Draft, error) {
	if err := requireStep(draft, StepReview); err != nil {
		return TripPlan{}, draft, err
	}

	plan := draft.Plan
	createdAt := now.UTC()
	plan.CreatedAt = &createdAt
	plan.ID = newID

	if existing != nil {
		if existing.ID != "" {
			plan.ID = existing.ID
		}
		if existing.CreatedAt != nil {
			created := *existing.CreatedAt
			plan.CreatedAt = &created
		}
	}

	draft.Plan = plan
	draft.CurrentStep = StepFinalized
	return plan, draft, nil
}

func requireStep(draft Draft, step Step) error {
	if draft.IsFinalized() {
		return errors.NewInvalidStateError("this plan has already been saved; start a new plan")
	}
	if draft.CurrentStep != step {
		return errors.NewInvalidStateError("this action is only available on the " + step.String() + " step")
	}
	return nil
}
