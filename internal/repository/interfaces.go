package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/habitflow/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user. Assigns the ID, returns the stored record
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	// Looks up user by email. Can be used for login
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
}

// HabitPatch carries the mutable habit fields for a partial update. Only
// non-nil fields are applied; ID and UserID are deliberately absent.
type HabitPatch struct {
	Title       *string
	Description *string
	Category    *entity.Category
	Frequency   *entity.Frequency
	Goal        *int
	Color       *string
	Icon        *string
}

// HabitsRepositoryI is owner-scoped: every lookup and mutation takes the
// caller's uid and answers ErrHabitNotFound for foreign habits exactly as
// for missing ones.
type HabitsRepositoryI interface {
	// Creates new habit. Assigns the ID, returns the stored record
	Create(ctx context.Context, habit *entity.Habit) (*entity.Habit, error)
	// Searches habit with given id among habits owned by uid
	GetByID(ctx context.Context, id, uid uuid.UUID) (*entity.Habit, error)
	// Lists habits owned by user with uid, in insertion order
	GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error)
	// Merges non-nil patch fields onto the habit, returns the merged record
	Update(ctx context.Context, id, uid uuid.UUID, patch *HabitPatch) (*entity.Habit, error)
	// Deletes the habit and its streak entries, returns the deleted snapshot
	Delete(ctx context.Context, id, uid uuid.UUID) (*entity.Habit, error)
	// Overwrites the streak entry for date (canonical YYYY-MM-DD) or appends
	// a new one. Atomic per habit: concurrent trackers of the same habit
	// serialize and never produce two entries with the same date
	Track(ctx context.Context, id, uid uuid.UUID, date string, completed bool) (*entity.Habit, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
