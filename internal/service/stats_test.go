package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/habitflow/internal/service"
	"github.com/limbo/habitflow/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func habitWithStreaks(category entity.Category, streaks ...entity.StreakEntry) *entity.Habit {
	return &entity.Habit{
		ID:       uuid.New(),
		Category: category,
		Streaks:  streaks,
	}
}

func completedOn(date string) entity.StreakEntry {
	return entity.StreakEntry{Date: date, Completed: true, Count: 1}
}

func missedOn(date string) entity.StreakEntry {
	return entity.StreakEntry{Date: date, Completed: false, Count: 0}
}

func TestCompletedOn(t *testing.T) {
	habits := []*entity.Habit{
		habitWithStreaks(entity.CategoryHealth, completedOn("2024-01-02")),
		habitWithStreaks(entity.CategoryWork,
			completedOn("2024-01-01"),
			missedOn("2024-01-02"),
		),
		habitWithStreaks(entity.CategoryOther),
	}
	// Counts habits, and only completed entries matter
	assert.Equal(t, 1, service.CompletedOn(habits, "2024-01-02"))
	assert.Equal(t, 1, service.CompletedOn(habits, "2024-01-01"))
	assert.Equal(t, 0, service.CompletedOn(habits, "2024-01-03"))
}

func TestLongestStreakTwoDays(t *testing.T) {
	habits := []*entity.Habit{
		habitWithStreaks(entity.CategoryOther,
			completedOn("2024-01-01"),
			completedOn("2024-01-02"),
		),
	}
	assert.Equal(t, 2, service.LongestStreak(habits))
}

func TestLongestStreakStopsAtGap(t *testing.T) {
	habits := []*entity.Habit{
		habitWithStreaks(entity.CategoryOther,
			completedOn("2024-01-01"),
			completedOn("2024-01-02"),
			// Gap: entries older than the gap don't count toward the run
			completedOn("2024-01-05"),
			completedOn("2024-01-06"),
			completedOn("2024-01-07"),
		),
	}
	assert.Equal(t, 3, service.LongestStreak(habits))
}

func TestLongestStreakIgnoresUncompleted(t *testing.T) {
	habits := []*entity.Habit{
		habitWithStreaks(entity.CategoryOther,
			completedOn("2024-01-01"),
			missedOn("2024-01-02"),
			completedOn("2024-01-03"),
		),
	}
	assert.Equal(t, 1, service.LongestStreak(habits))
}

func TestLongestStreakMaxAcrossHabitsNotSum(t *testing.T) {
	habits := []*entity.Habit{
		habitWithStreaks(entity.CategoryOther,
			completedOn("2024-01-01"),
			completedOn("2024-01-02"),
		),
		habitWithStreaks(entity.CategorySport,
			completedOn("2024-01-01"),
			completedOn("2024-01-02"),
			completedOn("2024-01-03"),
		),
	}
	assert.Equal(t, 3, service.LongestStreak(habits))
}

func TestLongestStreakEmpty(t *testing.T) {
	assert.Equal(t, 0, service.LongestStreak(nil))
	assert.Equal(t, 0, service.LongestStreak([]*entity.Habit{habitWithStreaks(entity.CategoryOther)}))
}

func TestGroupByCategory(t *testing.T) {
	habits := []*entity.Habit{
		habitWithStreaks(entity.CategoryHealth),
		habitWithStreaks(entity.CategoryHealth),
		habitWithStreaks(entity.CategoryLearning),
		habitWithStreaks(entity.Category("")),
	}
	grouped, counts := service.GroupByCategory(habits)
	assert.Len(t, grouped[entity.CategoryHealth], 2)
	assert.Len(t, grouped[entity.CategoryLearning], 1)
	// Unknown category buckets as "other"
	assert.Len(t, grouped[entity.CategoryOther], 1)
	assert.Equal(t, 2, counts[entity.CategoryHealth])
	assert.Equal(t, 1, counts[entity.CategoryLearning])
	assert.Equal(t, 1, counts[entity.CategoryOther])
}

func TestGetUserStats(t *testing.T) {
	serv := newHabitsService()
	ctx := context.Background()
	owner := uuid.New()
	today := time.Now().UTC().Format("2006-01-02")
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

	read, err := serv.CreateHabit(ctx, owner, &service.CreateHabitRequest{Title: "Read", Category: "learning"})
	require.NoError(t, err)
	run, err := serv.CreateHabit(ctx, owner, &service.CreateHabitRequest{Title: "Run", Category: "sport"})
	require.NoError(t, err)

	_, err = serv.TrackHabit(ctx, read.ID, owner, yesterday, true)
	require.NoError(t, err)
	_, err = serv.TrackHabit(ctx, read.ID, owner, today, true)
	require.NoError(t, err)
	_, err = serv.TrackHabit(ctx, run.ID, owner, today, false)
	require.NoError(t, err)

	stats, err := serv.GetUserStats(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalHabits)
	assert.Equal(t, 1, stats.CompletedToday)
	assert.Equal(t, 2, stats.LongestStreak)
	assert.Equal(t, 1, stats.CategoryCounts[entity.CategoryLearning])
	assert.Equal(t, 1, stats.CategoryCounts[entity.CategorySport])
	assert.Len(t, stats.HabitsByCategory[entity.CategoryLearning], 1)
}
