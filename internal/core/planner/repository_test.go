package planner

import (
	"context"
	"testing"
	"time"

	"github.com/kiervincent5/travel-planner/internal/mocks"
	"github.com/kiervincent5/travel-planner/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seedPlans(t *testing.T, repo *PlanRepository, plans ...TripPlan) {
	t.Helper()
	for _, plan := range plans {
		_, err := repo.Append(context.Background(), plan)
		require.NoError(t, err)
	}
}

func TestPlanRepository_ListEmpty(t *testing.T) {
	repo := NewPlanRepository(newMemStore())

	plans, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, plans)
	assert.Empty(t, plans)
}

func TestPlanRepository_ListCorruptedData(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		raw  string
	}{
		{name: "NotJSON", raw: "{{{"},
		{name: "Object", raw: `{"title":"x"}`},
		{name: "Null", raw: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			require.NoError(t, store.Set(ctx, KeyTripPlans, tt.raw))

			plans, err := NewPlanRepository(store).List(ctx)

			require.NoError(t, err)
			assert.Empty(t, plans)
		})
	}
}

func TestPlanRepository_ListPropagatesStorageErrors(t *testing.T) {
	store := mocks.NewKeyValueStore(t)
	store.On("Get", mock.Anything, KeyTripPlans).Return("", errors.NewStorageError("connection refused", nil))

	_, err := NewPlanRepository(store).List(context.Background())

	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeStorage, errors.TypeOf(err))
}

func TestPlanRepository_OddFieldValuesKeepOtherPlans(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	require.NoError(t, store.Set(ctx, KeyTripPlans,
		`[{"id":"a","title":"A","startDate":"2023-01-01","endDate":"2023-01-02","travelers":1},
		  {"id":"b","title":"B","startDate":"06/01/2024","endDate":"2024-06-02","travelers":"two"}]`))
	repo := NewPlanRepository(store)

	plans, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.True(t, plans[1].StartDate.IsZero())
	assert.Equal(t, "2024-06-02", plans[1].EndDate.String())

	index, err := repo.Append(ctx, samplePlan("c", "C", "2024-07-01", "2024-07-02"))
	require.NoError(t, err)
	assert.Equal(t, 2, index)

	plans, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{plans[0].ID, plans[1].ID, plans[2].ID})
}

func TestPlanRepository_UndecodableRecordBlocksWrites(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	raw := `[{"id":"a","title":"A"},{"id":"b","title":["not","a","string"]}]`
	require.NoError(t, store.Set(ctx, KeyTripPlans, raw))
	repo := NewPlanRepository(store)

	plans, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "a", plans[0].ID)

	_, err = repo.Append(ctx, samplePlan("c", "C", "2024-07-01", "2024-07-02"))
	assert.Equal(t, errors.ErrorTypeStorage, errors.TypeOf(err))
	assert.Equal(t, errors.ErrorTypeStorage, errors.TypeOf(repo.RemoveAt(ctx, 0)))
	assert.Equal(t, errors.ErrorTypeStorage, errors.TypeOf(repo.RemoveByID(ctx, "a")))

	stored, err := store.Get(ctx, KeyTripPlans)
	require.NoError(t, err)
	assert.Equal(t, raw, stored)
}

func TestPlanRepository_Append(t *testing.T) {
	ctx := context.Background()
	repo := NewPlanRepository(newMemStore())
	seedPlans(t, repo, samplePlan("a", "First", "2024-06-01", "2024-06-02"))

	plan := samplePlan("b", "Second", "2024-07-01", "2024-07-05")
	index, err := repo.Append(ctx, plan)
	require.NoError(t, err)

	plans, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, index)
	assert.Len(t, plans, 2)
	assert.Equal(t, plan, plans[len(plans)-1])
}

func TestPlanRepository_RemoveAtShiftsLaterPlans(t *testing.T) {
	ctx := context.Background()
	repo := NewPlanRepository(newMemStore())
	seedPlans(t, repo,
		samplePlan("a", "A", "2024-06-01", "2024-06-01"),
		samplePlan("b", "B", "2024-06-01", "2024-06-01"),
		samplePlan("c", "C", "2024-06-01", "2024-06-01"),
		samplePlan("d", "D", "2024-06-01", "2024-06-01"),
	)

	require.NoError(t, repo.RemoveAt(ctx, 1))

	plans, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, []string{"A", "C", "D"}, []string{plans[0].Title, plans[1].Title, plans[2].Title})
}

func TestPlanRepository_OutOfRangeIndexesAreIgnored(t *testing.T) {
	ctx := context.Background()
	repo := NewPlanRepository(newMemStore())
	original := samplePlan("a", "A", "2024-06-01", "2024-06-01")
	seedPlans(t, repo, original)

	for _, index := range []int{-1, 1, 42} {
		require.NoError(t, repo.UpdateAt(ctx, index, samplePlan("z", "Z", "2024-01-01", "2024-01-01")))
		require.NoError(t, repo.RemoveAt(ctx, index))
	}

	plans, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []TripPlan{original}, plans)
}

func TestPlanRepository_UpdateAt(t *testing.T) {
	ctx := context.Background()
	repo := NewPlanRepository(newMemStore())
	seedPlans(t, repo,
		samplePlan("a", "A", "2024-06-01", "2024-06-01"),
		samplePlan("b", "B", "2024-06-01", "2024-06-01"),
	)

	replacement := samplePlan("b", "B2", "2024-08-01", "2024-08-02")
	require.NoError(t, repo.UpdateAt(ctx, 1, replacement))

	plans, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, plans, 2)
	assert.Equal(t, replacement, plans[1])
}

func TestPlanRepository_IDOperations(t *testing.T) {
	ctx := context.Background()
	repo := NewPlanRepository(newMemStore())
	seedPlans(t, repo,
		samplePlan("a", "A", "2024-06-01", "2024-06-01"),
		samplePlan("b", "B", "2024-06-01", "2024-06-01"),
		samplePlan("", "Legacy", "2024-06-01", "2024-06-01"),
	)

	t.Run("FindByID", func(t *testing.T) {
		index, plan, err := repo.FindByID(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, 0, index)
		assert.Equal(t, "A", plan.Title)

		_, _, err = repo.FindByID(ctx, "missing")
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("UpdateByID", func(t *testing.T) {
		index, err := repo.UpdateByID(ctx, "b", samplePlan("b", "B2", "2024-06-01", "2024-06-01"))
		require.NoError(t, err)
		assert.Equal(t, 1, index)

		_, err = repo.UpdateByID(ctx, "missing", TripPlan{})
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("RemoveByIDAfterEarlierDelete", func(t *testing.T) {
		require.NoError(t, repo.RemoveAt(ctx, 0))
		require.NoError(t, repo.RemoveByID(ctx, "b"))

		plans, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Equal(t, "Legacy", plans[0].Title)

		assert.True(t, errors.IsNotFoundError(repo.RemoveByID(ctx, "b")))
	})
}

func TestStats(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	future := samplePlan("a", "Future", "2024-07-01", "2024-07-03")
	future.Destination = &Destination{Name: "Cebu"}
	past := samplePlan("b", "Past", "2024-05-01", "2024-05-03")
	past.Destination = &Destination{Name: "Cebu"}
	other := samplePlan("c", "Other", "2024-01-10", "2024-01-12")
	other.Destination = &Destination{Name: "Tokyo"}

	stats := Stats([]TripPlan{future, past, other}, now)

	assert.Equal(t, PlanStats{Total: 3, Upcoming: 1, UniqueDestinations: 2}, stats)
}

func TestStats_Edges(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("StartingTodayIsNotUpcoming", func(t *testing.T) {
		stats := Stats([]TripPlan{samplePlan("a", "Today", "2024-06-15", "2024-06-16")}, now)
		assert.Equal(t, 0, stats.Upcoming)
	})

	t.Run("EmptyDestinationNamesAreNotCounted", func(t *testing.T) {
		plan := samplePlan("a", "A", "2024-01-01", "2024-01-01")
		plan.Destination = &Destination{Name: ""}
		stats := Stats([]TripPlan{plan, samplePlan("b", "B", "2024-01-01", "2024-01-01")}, now)
		assert.Equal(t, 0, stats.UniqueDestinations)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, PlanStats{}, Stats(nil, now))
	})
}

func TestHandoffStore(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	handoffs := NewHandoffStore(store)

	editing, err := handoffs.Editing(ctx)
	require.NoError(t, err)
	assert.Nil(t, editing)

	plan := samplePlan("a", "A", "2024-06-01", "2024-06-02")
	require.NoError(t, handoffs.SetEditing(ctx, EditHandoff{Index: 2, ID: "a", Plan: plan}))
	require.NoError(t, handoffs.SetViewing(ctx, plan))

	editing, err = handoffs.Editing(ctx)
	require.NoError(t, err)
	require.NotNil(t, editing)
	assert.Equal(t, 2, editing.Index)
	assert.Equal(t, plan, editing.Plan)

	viewing, err := handoffs.Viewing(ctx)
	require.NoError(t, err)
	assert.Equal(t, &plan, viewing)

	require.NoError(t, handoffs.ClearEditing(ctx))
	require.NoError(t, handoffs.ClearViewing(ctx))
	editing, _ = handoffs.Editing(ctx)
	viewing, _ = handoffs.Viewing(ctx)
	assert.Nil(t, editing)
	assert.Nil(t, viewing)

	require.NoError(t, store.Set(ctx, KeyCurrentViewPlan, "not json"))
	viewing, err = handoffs.Viewing(ctx)
	require.NoError(t, err)
	assert.Nil(t, viewing)
}
