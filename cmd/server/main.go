package main

import (
	"log"

	"tuiter/internal/config"
	"tuiter/internal/db"
	"tuiter/internal/handlers"
	"tuiter/internal/middleware"
	"tuiter/internal/router"
	"tuiter/internal/services"
	"tuiter/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	gdb, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	cache, err := utils.NewCache(500)
	if err != nil {
		log.Fatalf("Failed to create cache: %v", err)
	}

	// Services, constructed once and passed explicitly
	tuitService := services.NewTuitService(gdb, cfg.OpTimeout)
	reactionService := services.NewReactionService(gdb, cfg.OpTimeout)
	pollService := services.NewPollService(gdb, cfg.OpTimeout)
	voteService := services.NewVoteService(gdb, cfg.OpTimeout)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("tuiter_session", store))
	r.Use(middleware.LoadUser(gdb))

	router.RegisterRoutes(
		r,
		handlers.NewAuthHandler(gdb),
		handlers.NewTuitHandler(tuitService),
		handlers.NewReactionHandler(reactionService),
		handlers.NewPollHandler(pollService, cache),
		handlers.NewVoteHandler(voteService, cache),
	)

	log.Printf("tuiter server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
