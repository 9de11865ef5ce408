// @title HabitFlow API
// @description API for the habit-tracker app "HabitFlow"
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"

	"github.com/limbo/habitflow/internal/api"
	"github.com/limbo/habitflow/internal/repository"
	"github.com/limbo/habitflow/internal/service"
	"github.com/limbo/habitflow/pkg/cleanup"
	"github.com/limbo/habitflow/pkg/config"
	jwtservice "github.com/limbo/habitflow/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()

	var usersRepo repository.UsersRepositoryI
	var habitsRepo repository.HabitsRepositoryI
	// Default storage is process-lifetime memory; STORAGE=postgres swaps in
	// the persistent engine behind the same interfaces.
	switch cfg.GetStringOr("STORAGE", "memory") {
	case "postgres":
		dbCfg := repository.PGCfg{
			Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
			Username: cfg.GetString("POSTGRES_USER"),
			Password: cfg.GetString("POSTGRES_PASSWORD"),
			DB:       cfg.GetString("POSTGRES_DB"),
		}
		usersRepo = repository.NewPGUsersRepo(&dbCfg)
		habitsRepo = repository.NewPGHabitsRepo(&dbCfg)
	default:
		usersRepo = repository.NewMemoryUsersRepo()
		habitsRepo = repository.NewMemoryHabitsRepo()
	}

	serv := api.New(&api.ServicesList{
		UserService:   service.NewUserService(usersRepo),
		HabitsService: service.NewHabitsService(habitsRepo),
		JwtService:    jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err := serv.Run(cfg.GetStringOr("API_ADDRESS", ":8080"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
