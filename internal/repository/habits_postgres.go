package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/pkg/cleanup"
	"github.com/limbo/habitflow/pkg/entity"
)

// PGHabitsRepository is the substitutable persistent engine behind
// HabitsRepositoryI. Streak entries live in habit_streaks with a unique
// (habit_id, entry_date) constraint, so Track is a single upsert.
type PGHabitsRepository struct {
	conn PgConnection
}

// querier is the slice of PgConnection shared with pgx.Tx, so reads can
// run either on the pool or inside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func NewPGHabitsRepo(cfg DBConfig) *PGHabitsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for habitsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for habitsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing habitsRepo pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &PGHabitsRepository{
		conn: pool,
	}
}

func NewPGHabitsRepoWithConn(conn PgConnection) *PGHabitsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for habitsRepo: " + err.Error())
	}
	return &PGHabitsRepository{
		conn: conn,
	}
}

func (hr *PGHabitsRepository) Create(ctx context.Context, habit *entity.Habit) (*entity.Habit, error) {
	stored := habit.Clone()
	row := hr.conn.QueryRow(ctx,
		`INSERT INTO habits (user_id, title, description, category, frequency, goal, color, icon)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at;`,
		habit.UserID, habit.Title, habit.Description, habit.Category, habit.Frequency,
		habit.Goal, habit.Color, habit.Icon,
	)
	if err := row.Scan(&stored.ID, &stored.CreatedAt); err != nil {
		return nil, errors.New("creating habit db error: " + err.Error())
	}
	stored.Streaks = []entity.StreakEntry{}
	return stored, nil
}

func (hr *PGHabitsRepository) GetByID(ctx context.Context, id, uid uuid.UUID) (*entity.Habit, error) {
	return hr.getByID(ctx, hr.conn, id, uid)
}

func (hr *PGHabitsRepository) getByID(ctx context.Context, q querier, id, uid uuid.UUID) (*entity.Habit, error) {
	var habit entity.Habit
	row := q.QueryRow(ctx,
		`SELECT id, user_id, title, description, category, frequency, goal, color, icon, created_at
		FROM habits WHERE id = $1 AND user_id = $2;`, id, uid)
	err := row.Scan(&habit.ID, &habit.UserID, &habit.Title, &habit.Description, &habit.Category,
		&habit.Frequency, &habit.Goal, &habit.Color, &habit.Icon, &habit.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrHabitNotFound
		}
		return nil, errors.New("getting habit by id error: " + err.Error())
	}
	habit.Streaks, err = hr.loadStreaks(ctx, q, habit.ID)
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

func (hr *PGHabitsRepository) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error) {
	habits := make([]*entity.Habit, 0)
	rows, err := hr.conn.Query(ctx,
		`SELECT id, user_id, title, description, category, frequency, goal, color, icon, created_at
		FROM habits WHERE user_id = $1 ORDER BY created_at, id;`, uid)
	if err != nil {
		return nil, errors.New("getting habits by uid error: " + err.Error())
	}
	defer rows.Close()
	byID := make(map[uuid.UUID]*entity.Habit)
	for rows.Next() {
		h := entity.Habit{Streaks: []entity.StreakEntry{}}
		err = rows.Scan(&h.ID, &h.UserID, &h.Title, &h.Description, &h.Category,
			&h.Frequency, &h.Goal, &h.Color, &h.Icon, &h.CreatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling habit error: " + err.Error())
		}
		habits = append(habits, &h)
		byID[h.ID] = &h
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	streakRows, err := hr.conn.Query(ctx,
		`SELECT s.habit_id, s.entry_date, s.completed, s.count
		FROM habit_streaks s JOIN habits h ON h.id = s.habit_id
		WHERE h.user_id = $1 ORDER BY s.id;`, uid)
	if err != nil {
		return nil, errors.New("getting streaks by uid error: " + err.Error())
	}
	defer streakRows.Close()
	for streakRows.Next() {
		var habitID uuid.UUID
		var s entity.StreakEntry
		err = streakRows.Scan(&habitID, &s.Date, &s.Completed, &s.Count)
		if err != nil {
			return nil, errors.New("unmarshalling streak entry error: " + err.Error())
		}
		if h, ok := byID[habitID]; ok {
			h.Streaks = append(h.Streaks, s)
		}
	}
	if streakRows.Err() != nil {
		return nil, errors.New("unexpected error after scanning streaks: " + streakRows.Err().Error())
	}
	return habits, nil
}

func (hr *PGHabitsRepository) Update(ctx context.Context, id, uid uuid.UUID, patch *HabitPatch) (*entity.Habit, error) {
	ct, err := hr.conn.Exec(ctx,
		`UPDATE habits SET
			title = COALESCE($1, title),
			description = COALESCE($2, description),
			category = COALESCE($3, category),
			frequency = COALESCE($4, frequency),
			goal = COALESCE($5, goal),
			color = COALESCE($6, color),
			icon = COALESCE($7, icon)
		WHERE id = $8 AND user_id = $9;`,
		patch.Title, patch.Description, patch.Category, patch.Frequency,
		patch.Goal, patch.Color, patch.Icon, id, uid,
	)
	if err != nil {
		return nil, errors.New("error updating habit: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return nil, errorvalues.ErrHabitNotFound
	}
	return hr.GetByID(ctx, id, uid)
}

// Delete runs in a transaction so the returned snapshot is exactly the
// row that was removed.
func (hr *PGHabitsRepository) Delete(ctx context.Context, id, uid uuid.UUID) (*entity.Habit, error) {
	tx, err := hr.conn.Begin(ctx)
	if err != nil {
		return nil, errors.New("starting delete transaction error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	habit, err := hr.getByID(ctx, tx, id, uid)
	if err != nil {
		return nil, err
	}
	// habit_streaks rows go with the habit via ON DELETE CASCADE
	ct, err := tx.Exec(ctx, `DELETE FROM habits WHERE id = $1 AND user_id = $2;`, id, uid)
	if err != nil {
		return nil, errors.New("error deleting habit: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return nil, errorvalues.ErrHabitNotFound
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, errors.New("committing habit delete error: " + err.Error())
	}
	return habit, nil
}

func (hr *PGHabitsRepository) Track(ctx context.Context, id, uid uuid.UUID, date string, completed bool) (*entity.Habit, error) {
	count := 0
	if completed {
		count = 1
	}
	// Ownership guard and upsert in one statement: inserts nothing when the
	// habit is missing or foreign, overwrites in place on a date collision.
	ct, err := hr.conn.Exec(ctx,
		`INSERT INTO habit_streaks (habit_id, entry_date, completed, count)
		SELECT h.id, $3, $4, $5 FROM habits h WHERE h.id = $1 AND h.user_id = $2
		ON CONFLICT (habit_id, entry_date)
		DO UPDATE SET completed = EXCLUDED.completed, count = EXCLUDED.count;`,
		id, uid, date, completed, count,
	)
	if err != nil {
		return nil, errors.New("tracking habit error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return nil, errorvalues.ErrHabitNotFound
	}
	return hr.GetByID(ctx, id, uid)
}

func (hr *PGHabitsRepository) loadStreaks(ctx context.Context, q querier, habitID uuid.UUID) ([]entity.StreakEntry, error) {
	rows, err := q.Query(ctx,
		`SELECT entry_date, completed, count FROM habit_streaks WHERE habit_id = $1 ORDER BY id;`, habitID)
	if err != nil {
		return nil, errors.New("getting streak entries error: " + err.Error())
	}
	defer rows.Close()
	streaks := make([]entity.StreakEntry, 0)
	for rows.Next() {
		var s entity.StreakEntry
		err = rows.Scan(&s.Date, &s.Completed, &s.Count)
		if err != nil {
			return nil, errors.New("streak entry parsing error: " + err.Error())
		}
		streaks = append(streaks, s)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected streak rows error: " + rows.Err().Error())
	}
	return streaks, nil
}
