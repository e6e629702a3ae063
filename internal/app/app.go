package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"reelboard_backend/internal/auth"
	"reelboard_backend/internal/config"
	"reelboard_backend/internal/email"
	"reelboard_backend/internal/handlers"
	"reelboard_backend/internal/logger"
	"reelboard_backend/internal/middleware"
	"reelboard_backend/internal/models"
	"reelboard_backend/internal/routes"
	"reelboard_backend/internal/services"
	"reelboard_backend/internal/store"
	"reelboard_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const storePingTimeout = 3 * time.Second

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	st := initializeStore(cfg)

	if err := seedFirstAdmin(st, cfg); err != nil {
		// Без админа сервис бесполезен - не стартуем
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, st)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// initializeStore поднимает Redis и оборачивает его в failover поверх
// in-memory хранилища. Если Redis недоступен на старте, сервер все равно
// запускается в деградированном режиме на памяти.
//
// Fallback сидируется всегда, а не только при недоступном старте: Redis
// может упасть посреди работы, и деградированный режим должен встретить
// это с готовыми фикстурами.
func initializeStore(cfg *config.Config) store.Store {
	memory := store.NewMemoryStore()
	memory.Seed()

	client, err := store.DialRedis(cfg.Redis.URL, cfg.Redis.Password)
	if err != nil {
		logger.Warn("Invalid Redis URL, running on in-memory store only", "error", err)
		return memory
	}
	redisStore := store.NewRedisStore(client)

	ctx, cancel := context.WithTimeout(context.Background(), storePingTimeout)
	defer cancel()
	if err := redisStore.Ping(ctx); err != nil {
		logger.Warn("Redis unavailable on startup, degraded mode enabled", "error", err)
	} else {
		logger.Info("Redis connected", "url", cfg.Redis.URL)
	}

	return store.NewFailover(redisStore, memory)
}

func SetupRouter(cfg *config.Config, st store.Store) *gin.Engine {
	// 1. Инициализируем сервисы
	serviceContainer := initializeServices(cfg, st)

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(serviceContainer)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(cfg)

	// 4. Делегируем регистрацию маршрутов пакету 'routes'
	routes.RegisterRoutes(ginRouter, appHandlers, serviceContainer.AuthService)

	return ginRouter
}

func initializeServices(cfg *config.Config, st store.Store) *services.ServiceContainer {
	var emailService email.Provider
	if cfg.Email.Enabled {
		emailService = email.NewSMTPProvider(email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		logger.Info("Email provider: SMTP", "host", cfg.Email.SMTPHost)
	} else {
		emailService = email.NewLogProvider()
		logger.Warn("Email отключен: magic-link'и пишутся в лог")
	}

	limiter := auth.NewRateLimiter()
	devMode := cfg.Server.Env != "production"

	inviteService := services.NewInviteService(st)
	authService := services.NewAuthService(
		st,
		inviteService,
		emailService,
		limiter,
		cfg.Auth.MagicLinkSecret,
		cfg.Auth.BaseURL,
		devMode,
	)
	profileService := services.NewProfileService(st)
	adminService := services.NewAdminService(st)

	return &services.ServiceContainer{
		AuthService:    authService,
		InviteService:  inviteService,
		ProfileService: profileService,
		AdminService:   adminService,
		EmailService:   emailService,
	}
}

func initializeHandlers(sc *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:    handlers.NewAuthHandler(baseHandler, sc.AuthService),
		InviteHandler:  handlers.NewInviteHandler(baseHandler, sc.InviteService, sc.AuthService),
		ProfileHandler: handlers.NewProfileHandler(baseHandler, sc.ProfileService, sc.AuthService),
		AdminHandler:   handlers.NewAdminHandler(baseHandler, sc.AdminService, sc.AuthService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

// seedFirstAdmin создает первого администратора по FIRST_ADMIN_EMAIL.
// Пароля нет - вход через magic-link на этот же email.
func seedFirstAdmin(st store.Store, cfg *config.Config) error {
	adminEmail := strings.ToLower(strings.TrimSpace(cfg.Admin.SeedEmail))
	if adminEmail == "" {
		logger.Warn("FIRST_ADMIN_EMAIL is not set. Skipping admin seeding.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), storePingTimeout)
	defer cancel()

	_, err := st.GetUserByEmail(ctx, adminEmail)
	if err == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	now := time.Now()
	newAdmin := &models.User{
		BaseModel:   models.BaseModel{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
		Email:       adminEmail,
		Role:        models.UserRoleAdmin,
		IsVerified:  true,
		Tier:        models.SubscriptionTierStudio,
		InviteQuota: models.BaseQuota(models.UserRoleAdmin),
	}
	if err := st.PutUser(ctx, newAdmin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	if err := st.PutSubscription(ctx, models.NewFreeSubscription(newAdmin.ID, now)); err != nil {
		return fmt.Errorf("failed to create admin subscription: %w", err)
	}

	logger.Info("✅ Successfully created first admin user", "email", adminEmail)
	return nil
}
