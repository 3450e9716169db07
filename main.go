package main

import (
	"log"
	"net/http"

	"github.com/emilearthur/todo/auth"
	"github.com/emilearthur/todo/cache"
	"github.com/emilearthur/todo/config"
	"github.com/emilearthur/todo/handlers"
	"github.com/emilearthur/todo/middleware"
	"github.com/emilearthur/todo/smtp"
	"github.com/emilearthur/todo/store"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		log.Fatal("database connection failed: " + err.Error())
	}

	s := store.New(db)
	if err := s.AutoMigrate(); err != nil {
		log.Fatal("migration failed: " + err.Error())
	}

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTAudience, cfg.JWTIssuer, cfg.TokenLifetime)
	codes := cache.NewCodes()
	mailer := smtp.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	// Expired verification codes are swept out of the cache every minute.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 1m", codes.Sweep); err != nil {
		log.Fatal(err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := gin.Default()
	r.RedirectTrailingSlash = false

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	limiter := middleware.NewIPRateLimiter(cfg.LoginRate, cfg.LoginBurst)
	authed := handlers.AuthMiddleware(tokens, s)

	api := r.Group("/api/v1")

	usersRoute := api.Group("/users")
	{
		usersRoute.POST("", limiter.Middleware(), handlers.Register(s, tokens))
		usersRoute.POST("/login", limiter.Middleware(), handlers.Login(s, tokens))
		usersRoute.GET("/me", authed, handlers.GetCurrentUser())
		usersRoute.PATCH("/me", authed, handlers.UpdateCurrentUser(s))
		usersRoute.POST("/verification", authed, limiter.Middleware(), handlers.SendVerificationCode(codes, mailer, cfg.CodeTTL))
		usersRoute.PUT("/verification", authed, limiter.Middleware(), handlers.VerifyEmail(s, codes))

		usersRoute.POST("/:username/evaluations/:todo_id", authed, handlers.CreateEvaluation(s))
		usersRoute.GET("/:username/evaluations", authed, handlers.ListEvaluations(s))
		usersRoute.GET("/:username/evaluations/stats", authed, handlers.GetEvaluationStats(s))
		usersRoute.GET("/:username/evaluations/:todo_id", authed, handlers.GetEvaluation(s))
	}

	profilesRoute := api.Group("/profiles")
	{
		profilesRoute.GET("/:username", authed, handlers.GetProfile(s))
		profilesRoute.PATCH("/me", authed, handlers.UpdateMyProfile(s))
	}

	todosRoute := api.Group("/todos")
	todosRoute.Use(authed)
	{
		todosRoute.POST("", handlers.CreateTodo(s))
		todosRoute.GET("", handlers.ListMyTodos(s))
		todosRoute.GET("/open", handlers.ListOpenTodos(s))
		todosRoute.GET("/:todo_id", handlers.GetTodo(s))
		todosRoute.PATCH("/:todo_id", handlers.UpdateTodo(s))
		todosRoute.DELETE("/:todo_id", handlers.DeleteTodo(s))

		todosRoute.POST("/:todo_id/offers", handlers.CreateOffer(s))
		todosRoute.GET("/:todo_id/offers", handlers.ListOffers(s))
		todosRoute.GET("/:todo_id/offers/:username", handlers.GetOffer(s))
		todosRoute.PUT("/:todo_id/offers/:username", handlers.AcceptOffer(s))
		todosRoute.PUT("/:todo_id/offers", handlers.CancelOffer(s))
		todosRoute.DELETE("/:todo_id/offers", handlers.RescindOffer(s))

		todosRoute.POST("/:todo_id/comments", handlers.CreateComment(s))
		todosRoute.GET("/:todo_id/comments", handlers.ListComments(s))
	}

	commentsRoute := api.Group("/comments")
	commentsRoute.Use(authed)
	{
		commentsRoute.PATCH("/:comment_id", handlers.UpdateComment(s))
		commentsRoute.DELETE("/:comment_id", handlers.DeleteComment(s))
	}

	evaluationsRoute := api.Group("/evaluations")
	{
		evaluationsRoute.GET("/export", authed, handlers.ExportEvaluations(s))
	}

	feedRoute := api.Group("/feed")
	{
		feedRoute.GET("/todos", authed, handlers.Feed(s))
	}

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
