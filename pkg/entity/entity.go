package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Category string

const (
	CategoryHealth   Category = "health"
	CategoryWork     Category = "work"
	CategoryLearning Category = "learning"
	CategorySport    Category = "sport"
	CategoryOther    Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryHealth, CategoryWork, CategoryLearning, CategorySport, CategoryOther:
		return true
	}
	return false
}

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Defaults applied on habit creation when the client omits a field.
const (
	DefaultGoal  = 1
	DefaultColor = "#3B82F6"
	DefaultIcon  = "📝"
)

// StreakEntry records whether a habit's goal was met on one calendar day.
// Date is the canonical YYYY-MM-DD form; a habit holds at most one entry
// per distinct date.
type StreakEntry struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	Count     int    `json:"count"`
}

type Habit struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"uid"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    Category      `json:"category"`
	Frequency   Frequency     `json:"frequency"`
	Goal        int           `json:"goal"`
	Color       string        `json:"color"`
	Icon        string        `json:"icon"`
	Streaks     []StreakEntry `json:"streaks"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Clone returns a deep copy so callers can't mutate stored state through
// the returned pointer.
func (h *Habit) Clone() *Habit {
	cp := *h
	cp.Streaks = make([]StreakEntry, len(h.Streaks))
	copy(cp.Streaks, h.Streaks)
	return &cp
}

type UserStats struct {
	TotalHabits      int                   `json:"total_habits"`
	CompletedToday   int                   `json:"completed_today"`
	LongestStreak    int                   `json:"longest_streak"`
	HabitsByCategory map[Category][]*Habit `json:"habits_by_category"`
	CategoryCounts   map[Category]int      `json:"category_counts"`
}
