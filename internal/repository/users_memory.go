package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/habitflow/internal/error_values"
	"github.com/limbo/habitflow/pkg/entity"
)

// MemoryUsersRepository keeps user records in process memory. State lives
// for the process lifetime only.
type MemoryUsersRepository struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]*entity.User
	byEmail map[string]uuid.UUID
}

func NewMemoryUsersRepo() *MemoryUsersRepository {
	return &MemoryUsersRepository{
		users:   make(map[uuid.UUID]*entity.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (ur *MemoryUsersRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	key := strings.ToLower(user.Email)
	ur.mu.Lock()
	defer ur.mu.Unlock()
	if _, taken := ur.byEmail[key]; taken {
		return nil, errorvalues.ErrUserExists
	}
	stored := *user
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	ur.users[stored.ID] = &stored
	ur.byEmail[key] = stored.ID
	out := stored
	return &out, nil
}

func (ur *MemoryUsersRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	ur.mu.RLock()
	defer ur.mu.RUnlock()
	id, ok := ur.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, errorvalues.ErrUserNotFound
	}
	out := *ur.users[id]
	return &out, nil
}

func (ur *MemoryUsersRepository) FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
	ur.mu.RLock()
	defer ur.mu.RUnlock()
	user, ok := ur.users[uid]
	if !ok {
		return nil, errorvalues.ErrUserNotFound
	}
	out := *user
	return &out, nil
}
