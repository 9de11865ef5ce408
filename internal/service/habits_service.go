package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/internal/repository"
	"github.com/limbo/habitflow/pkg/entity"
)

// dateLayout is the canonical form streak entries are keyed by.
const dateLayout = "2006-01-02"

type HabitsService struct {
	repo repository.HabitsRepositoryI
}

func NewHabitsService(habitsRepo repository.HabitsRepositoryI) *HabitsService {
	if habitsRepo == nil {
		log.Fatal("provided nil habitsRepo")
	}
	return &HabitsService{
		repo: habitsRepo,
	}
}

func (hs *HabitsService) CreateHabit(ctx context.Context, uid uuid.UUID, req *CreateHabitRequest) (*entity.Habit, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", errorvalues.ErrValidation)
	}
	category, err := normalizeCategory(req.Category)
	if err != nil {
		return nil, err
	}
	frequency, err := normalizeFrequency(req.Frequency)
	if err != nil {
		return nil, err
	}
	goal := req.Goal
	if goal == 0 {
		goal = entity.DefaultGoal
	}
	if goal < 1 {
		return nil, fmt.Errorf("%w: goal must be positive", errorvalues.ErrValidation)
	}
	color := req.Color
	if color == "" {
		color = entity.DefaultColor
	}
	icon := req.Icon
	if icon == "" {
		icon = entity.DefaultIcon
	}
	habit, err := hs.repo.Create(ctx, &entity.Habit{
		UserID:      uid,
		Title:       title,
		Description: req.Description,
		Category:    category,
		Frequency:   frequency,
		Goal:        goal,
		Color:       color,
		Icon:        icon,
	})
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}

func (hs *HabitsService) GetUserHabits(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error) {
	habits, err := hs.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habits, nil
}

func (hs *HabitsService) GetHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error) {
	habit, err := hs.repo.GetByID(ctx, habitID, userID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}

func (hs *HabitsService) UpdateHabit(ctx context.Context, habitID, userID uuid.UUID, req *UpdateHabitRequest) (*entity.Habit, error) {
	patch := repository.HabitPatch{
		Description: req.Description,
		Goal:        req.Goal,
		Color:       req.Color,
		Icon:        req.Icon,
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title can't be empty", errorvalues.ErrValidation)
		}
		patch.Title = &title
	}
	if req.Category != nil {
		category, err := normalizeCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		patch.Category = &category
	}
	if req.Frequency != nil {
		frequency, err := normalizeFrequency(*req.Frequency)
		if err != nil {
			return nil, err
		}
		patch.Frequency = &frequency
	}
	if req.Goal != nil && *req.Goal < 1 {
		return nil, fmt.Errorf("%w: goal must be positive", errorvalues.ErrValidation)
	}
	habit, err := hs.repo.Update(ctx, habitID, userID, &patch)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}

func (hs *HabitsService) DeleteHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error) {
	habit, err := hs.repo.Delete(ctx, habitID, userID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}

// TrackHabit records the completion state for one calendar day. Tracking
// the same date again overwrites the existing entry, so the operation is
// idempotent per (habit, date, completed).
func (hs *HabitsService) TrackHabit(ctx context.Context, habitID, userID uuid.UUID, date string, completed bool) (*entity.Habit, error) {
	day, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	habit, err := hs.repo.Track(ctx, habitID, userID, day, completed)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			return nil, err
		}
		return nil, errors.New("habits repository error: " + err.Error())
	}
	return habit, nil
}

func normalizeCategory(raw string) (entity.Category, error) {
	if raw == "" {
		return entity.CategoryOther, nil
	}
	category := entity.Category(strings.ToLower(raw))
	if !category.Valid() {
		return "", fmt.Errorf("%w: unknown category %q", errorvalues.ErrValidation, raw)
	}
	return category, nil
}

func normalizeFrequency(raw string) (entity.Frequency, error) {
	if raw == "" {
		return entity.FrequencyDaily, nil
	}
	frequency := entity.Frequency(strings.ToLower(raw))
	if !frequency.Valid() {
		return "", fmt.Errorf("%w: unknown frequency %q", errorvalues.ErrValidation, raw)
	}
	return frequency, nil
}

// normalizeDate reduces the input to day granularity. Clients send either
// a plain date or a full RFC3339 timestamp.
func normalizeDate(raw string) (string, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t.Format(dateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC().Format(dateLayout), nil
	}
	return "", errorvalues.ErrBadDate
}
