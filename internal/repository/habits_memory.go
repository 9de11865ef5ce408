package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/pkg/entity"
)

// MemoryHabitsRepository keeps habit records and their streak entries in
// process memory behind a single RWMutex. Read-modify-write operations
// (Update, Track) run inside the write lock, which serializes concurrent
// trackers of the same habit.
type MemoryHabitsRepository struct {
	mu     sync.RWMutex
	habits map[uuid.UUID]*entity.Habit
	order  []uuid.UUID
}

func NewMemoryHabitsRepo() *MemoryHabitsRepository {
	return &MemoryHabitsRepository{
		habits: make(map[uuid.UUID]*entity.Habit),
	}
}

func (hr *MemoryHabitsRepository) Create(ctx context.Context, habit *entity.Habit) (*entity.Habit, error) {
	hr.mu.Lock()
	defer hr.mu.Unlock()
	stored := habit.Clone()
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	if stored.Streaks == nil {
		stored.Streaks = []entity.StreakEntry{}
	}
	hr.habits[stored.ID] = stored
	hr.order = append(hr.order, stored.ID)
	return stored.Clone(), nil
}

// get resolves an owner-scoped habit under an already-held lock. A habit
// owned by someone else answers exactly like a missing one.
func (hr *MemoryHabitsRepository) get(id, uid uuid.UUID) (*entity.Habit, error) {
	habit, ok := hr.habits[id]
	if !ok || habit.UserID != uid {
		return nil, errorvalues.ErrHabitNotFound
	}
	return habit, nil
}

func (hr *MemoryHabitsRepository) GetByID(ctx context.Context, id, uid uuid.UUID) (*entity.Habit, error) {
	hr.mu.RLock()
	defer hr.mu.RUnlock()
	habit, err := hr.get(id, uid)
	if err != nil {
		return nil, err
	}
	return habit.Clone(), nil
}

func (hr *MemoryHabitsRepository) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error) {
	hr.mu.RLock()
	defer hr.mu.RUnlock()
	habits := make([]*entity.Habit, 0)
	for _, id := range hr.order {
		if h, ok := hr.habits[id]; ok && h.UserID == uid {
			habits = append(habits, h.Clone())
		}
	}
	return habits, nil
}

func (hr *MemoryHabitsRepository) Update(ctx context.Context, id, uid uuid.UUID, patch *HabitPatch) (*entity.Habit, error) {
	hr.mu.Lock()
	defer hr.mu.Unlock()
	habit, err := hr.get(id, uid)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		habit.Title = *patch.Title
	}
	if patch.Description != nil {
		habit.Description = *patch.Description
	}
	if patch.Category != nil {
		habit.Category = *patch.Category
	}
	if patch.Frequency != nil {
		habit.Frequency = *patch.Frequency
	}
	if patch.Goal != nil {
		habit.Goal = *patch.Goal
	}
	if patch.Color != nil {
		habit.Color = *patch.Color
	}
	if patch.Icon != nil {
		habit.Icon = *patch.Icon
	}
	return habit.Clone(), nil
}

func (hr *MemoryHabitsRepository) Delete(ctx context.Context, id, uid uuid.UUID) (*entity.Habit, error) {
	hr.mu.Lock()
	defer hr.mu.Unlock()
	habit, err := hr.get(id, uid)
	if err != nil {
		return nil, err
	}
	delete(hr.habits, id)
	for i, oid := range hr.order {
		if oid == id {
			hr.order = append(hr.order[:i], hr.order[i+1:]...)
			break
		}
	}
	return habit, nil
}

func (hr *MemoryHabitsRepository) Track(ctx context.Context, id, uid uuid.UUID, date string, completed bool) (*entity.Habit, error) {
	hr.mu.Lock()
	defer hr.mu.Unlock()
	habit, err := hr.get(id, uid)
	if err != nil {
		return nil, err
	}
	count := 0
	if completed {
		count = 1
	}
	for i := range habit.Streaks {
		if habit.Streaks[i].Date == date {
			habit.Streaks[i].Completed = completed
			habit.Streaks[i].Count = count
			return habit.Clone(), nil
		}
	}
	habit.Streaks = append(habit.Streaks, entity.StreakEntry{
		Date:      date,
		Completed: completed,
		Count:     count,
	})
	return habit.Clone(), nil
}
