package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/limbo/habitflow/pkg/entity"
)

type RegisterRequest struct {
	Username string `validate:"required,alphanum_underscore,min=3,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
}

type CreateHabitRequest struct {
	Title       string
	Description string
	Category    string
	Frequency   string
	Goal        int
	Color       string
	Icon        string
}

// UpdateHabitRequest is the allow-list for partial updates: only these
// fields can change, and only when the pointer is set. The habit's ID and
// owner have no representation here on purpose.
type UpdateHabitRequest struct {
	Title       *string
	Description *string
	Category    *string
	Frequency   *string
	Goal        *int
	Color       *string
	Icon        *string
}

type UserServiceI interface {
	// Validates credentials, stores the user with a hashed password.
	// Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, gives back user's data with ID
	Login(ctx context.Context, email, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

type HabitsServiceI interface {
	CreateHabit(ctx context.Context, uid uuid.UUID, req *CreateHabitRequest) (*entity.Habit, error)
	GetUserHabits(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error)
	GetHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error)
	UpdateHabit(ctx context.Context, habitID, userID uuid.UUID, req *UpdateHabitRequest) (*entity.Habit, error)
	DeleteHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error)
	TrackHabit(ctx context.Context, habitID, userID uuid.UUID, date string, completed bool) (*entity.Habit, error)
	GetUserStats(ctx context.Context, uid uuid.UUID) (*entity.UserStats, error)
}
