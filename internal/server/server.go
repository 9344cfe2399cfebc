package server

import (
	"strings"

	"anoa.com/schoolrecords/internal/admin"
	"anoa.com/schoolrecords/internal/auth"
	"anoa.com/schoolrecords/internal/config"
	"anoa.com/schoolrecords/internal/handler"
	"anoa.com/schoolrecords/internal/middleware"
	"anoa.com/schoolrecords/internal/model"
	"anoa.com/schoolrecords/internal/repository"
	"anoa.com/schoolrecords/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Server struct {
	engine *gin.Engine
	cfg    *config.Config
}

func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, logger zerolog.Logger) *Server {
	userRepo := repository.NewUserRepository(db)

	userService := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(userService)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	authHandler := handler.NewAuthHandler(authService)

	var resolver auth.Resolver
	if cfg.AuthMode == "token" {
		resolver = auth.NewTokenResolver(userRepo, cfg.JWTSecret)
	} else {
		resolver = auth.NewMockResolver(userRepo)
	}
	authMiddleware := middleware.NewAuthMiddleware(resolver)

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := router.Group("/api")
	api.Use(middleware.RateLimit(redisClient, cfg.RateLimitGlobal))
	{
		api.POST("/auth/login", authHandler.Login)

		api.GET("/user", userHandler.GetAllUsers)
		api.GET("/user/:user_id", userHandler.GetUser)
		api.POST("/user", userHandler.CreateUser)

		student := api.Group("/student")
		student.Use(authMiddleware.RequireAuth())
		{
			student.GET("/:student_id",
				authMiddleware.RequireRole(model.RoleStudent, model.RoleParent),
				userHandler.GetStudent)
			student.PUT("/:student_id",
				authMiddleware.RequireRole(model.RoleTeacher),
				userHandler.UpdateStudent)
		}
	}

	// The admin surface binds the same entities straight to the store and
	// is not routed through the API's business rules.
	site := admin.New(db, AdminResources()...)
	site.Mount(router.Group("/admin"))

	return &Server{engine: router, cfg: cfg}
}

// AdminResources declares the entity bindings for the admin surface.
func AdminResources() []admin.Resource {
	return []admin.Resource{
		{
			Name:           "user",
			Model:          func() interface{} { return &model.User{} },
			SearchFields:   []string{"email", "role"},
			ListFields:     []string{"id", "email", "role", "is_active"},
			EditableFields: []string{"email", "hashed_password", "is_active", "role"},
			ReadonlyFields: []string{"id"},
		},
		{
			Name:           "student_data",
			Model:          func() interface{} { return &model.StudentData{} },
			SearchFields:   []string{"data"},
			ListFields:     []string{"id", "student_id", "data"},
			EditableFields: []string{"student_id", "data"},
			ReadonlyFields: []string{"id"},
		},
	}
}

func (s *Server) Run() error {
	return s.engine.Run(":" + s.cfg.Port)
}

// Engine exposes the router, used by tests to serve requests directly.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
