package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/habitflow/pkg/entity"
)

// GetUserStats derives the dashboard numbers from the user's habits.
func (hs *HabitsService) GetUserStats(ctx context.Context, uid uuid.UUID) (*entity.UserStats, error) {
	habits, err := hs.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	byCategory, counts := GroupByCategory(habits)
	return &entity.UserStats{
		TotalHabits:      len(habits),
		CompletedToday:   CompletedOn(habits, time.Now().UTC().Format(dateLayout)),
		LongestStreak:    LongestStreak(habits),
		HabitsByCategory: byCategory,
		CategoryCounts:   counts,
	}, nil
}

// CompletedOn counts habits having a completed streak entry on the given
// day (canonical YYYY-MM-DD). Counts habits, not entries.
func CompletedOn(habits []*entity.Habit, day string) int {
	completed := 0
	for _, h := range habits {
		for _, s := range h.Streaks {
			if s.Date == day && s.Completed {
				completed++
				break
			}
		}
	}
	return completed
}

// LongestStreak reports the maximum run across habits, where a habit's run
// is the count of consecutive completed days ending at its most recent
// completed entry. The maximum, not the sum: two habits tracked in
// parallel don't combine into one streak.
func LongestStreak(habits []*entity.Habit) int {
	longest := 0
	for _, h := range habits {
		if run := currentRun(h.Streaks); run > longest {
			longest = run
		}
	}
	return longest
}

func currentRun(streaks []entity.StreakEntry) int {
	days := make([]time.Time, 0, len(streaks))
	for _, s := range streaks {
		if !s.Completed {
			continue
		}
		day, err := time.Parse(dateLayout, s.Date)
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	run := 0
	var last time.Time
	for _, day := range days {
		if !last.IsZero() && last.Sub(day) != 24*time.Hour {
			break
		}
		run++
		last = day
	}
	return run
}

// GroupByCategory buckets habits by category, with unknown values falling
// back to "other", and also returns the per-category counts.
func GroupByCategory(habits []*entity.Habit) (map[entity.Category][]*entity.Habit, map[entity.Category]int) {
	grouped := make(map[entity.Category][]*entity.Habit)
	counts := make(map[entity.Category]int)
	for _, h := range habits {
		category := h.Category
		if !category.Valid() {
			category = entity.CategoryOther
		}
		grouped[category] = append(grouped[category], h)
		counts[category]++
	}
	return grouped, counts
}
