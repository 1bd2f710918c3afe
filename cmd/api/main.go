package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/finanzas-api/internal/application/analytics"
	"github.com/jhoicas/finanzas-api/internal/application/auth"
	"github.com/jhoicas/finanzas-api/internal/application/budgeting"
	"github.com/jhoicas/finanzas-api/internal/application/otp"
	"github.com/jhoicas/finanzas-api/internal/application/spending"
	"github.com/jhoicas/finanzas-api/internal/application/usecase"
	"github.com/jhoicas/finanzas-api/internal/domain/budget"
	infraai "github.com/jhoicas/finanzas-api/internal/infrastructure/ai"
	"github.com/jhoicas/finanzas-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/finanzas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/finanzas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/finanzas-api/internal/infrastructure/ratelimit"
	"github.com/jhoicas/finanzas-api/internal/infrastructure/redisstore"
	"github.com/jhoicas/finanzas-api/internal/infrastructure/tables"
	httpRouter "github.com/jhoicas/finanzas-api/internal/interfaces/http"
	"github.com/jhoicas/finanzas-api/pkg/config"
	"github.com/jhoicas/finanzas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Strs("applied", applied).Msg("migraciones al día")
	}

	rdb, err := redisstore.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
	}
	defer rdb.Close()

	tbl, err := tables.Load(cfg.Budget.TablesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("tablas de presupuesto")
	}
	engine := budget.NewEngine(tbl)
	log.Info().
		Int("categories", len(tbl.Categories)).
		Int("cities", len(tbl.Cities)).
		Str("source", cfg.Budget.TablesPath).
		Msg("tablas de presupuesto cargadas")

	advisor, err := infraai.NewAdvisor(cfg.AI)
	if err != nil {
		log.Fatal().Err(err).Msg("proveedor de IA")
	}
	if advisor == nil {
		log.Warn().Str("provider", cfg.AI.Provider).Msg("consejos IA deshabilitados")
	}

	userRepo := postgres.NewUserRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	spendingRepo := postgres.NewSpendingRepository(pool)
	goalRepo := postgres.NewGoalRepository(pool)
	debtRepo := postgres.NewDebtRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	otpStore := redisstore.NewOTPStore(rdb)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	otpUC := otp.NewUseCase(otpStore, userRepo,
		notify.NewLogSender(log, cfg.App.Env == "development"),
		otp.Config{
			TTL:         cfg.OTP.TTL,
			Cooldown:    cfg.OTP.Cooldown,
			MaxPerHour:  cfg.OTP.MaxPerHour,
			MaxAttempts: cfg.OTP.MaxAttempts,
		},
		log.Component("otp"),
	)
	budgetUC := budgeting.NewUseCase(userRepo, budgetRepo, spendingRepo, engine, advisor,
		infrapdf.NewMarotoReportGenerator(), log.Component("budgeting"))
	expenseUC := spending.NewUseCase(txRunner, expenseRepo, tbl, log.Component("spending"))

	limiter := ratelimit.NewStore(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	limiter.StartJanitor(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Finanzas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		OTPUC:          otpUC,
		UserUC:         usecase.NewUserUseCase(userRepo),
		BudgetUC:       budgetUC,
		ExpenseUC:      expenseUC,
		GoalUC:         usecase.NewGoalUseCase(goalRepo, notificationRepo),
		DebtUC:         usecase.NewDebtUseCase(debtRepo, notificationRepo),
		NotificationUC: usecase.NewNotificationUseCase(notificationRepo),
		DashboardUC:    appanalytics.NewDashboardUseCase(budgetRepo, spendingRepo, goalRepo, debtRepo, notificationRepo),
		AnalyticsUC:    usecase.NewAnalyticsUseCase(spendingRepo),
		RateLimiter:    limiter,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
