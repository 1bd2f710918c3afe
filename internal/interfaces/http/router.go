package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/finanzas-api/internal/application/analytics"
	"github.com/jhoicas/finanzas-api/internal/application/auth"
	"github.com/jhoicas/finanzas-api/internal/application/budgeting"
	"github.com/jhoicas/finanzas-api/internal/application/otp"
	"github.com/jhoicas/finanzas-api/internal/application/spending"
	"github.com/jhoicas/finanzas-api/internal/application/usecase"
	"github.com/jhoicas/finanzas-api/internal/domain/entity"
	"github.com/jhoicas/finanzas-api/internal/infrastructure/ratelimit"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	OTPUC          *otp.UseCase
	UserUC         *usecase.UserUseCase
	BudgetUC       *budgeting.UseCase
	ExpenseUC      *spending.UseCase
	GoalUC         *usecase.GoalUseCase
	DebtUC         *usecase.DebtUseCase
	NotificationUC *usecase.NotificationUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	AnalyticsUC    *usecase.AnalyticsUseCase
	RateLimiter    *ratelimit.Store // nil = sin límite en rutas públicas
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público, limitado por IP)
	authGroup := api.Group("/auth")
	if deps.RateLimiter != nil {
		authGroup.Use(RateLimit(deps.RateLimiter))
	}
	authHandler := NewAuthHandler(deps.AuthUC, deps.OTPUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/otp/request", authHandler.RequestOTP)
	authGroup.Post("/otp/verify", authHandler.VerifyOTP)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/profile", userHandler.Me)
	protected.Put("/profile", userHandler.UpdateProfile)

	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	admin.Get("/users", userHandler.List)
	admin.Put("/users/:id/status", userHandler.SetStatus)

	// Budgets: "categories" antes de ":month"
	budgets := protected.Group("/budgets")
	budgetHandler := NewBudgetHandler(deps.BudgetUC)
	budgets.Get("/categories", budgetHandler.Categories)
	budgets.Post("/generate", budgetHandler.Generate)
	budgets.Get("/", budgetHandler.List)
	budgets.Get("/:month/report.pdf", budgetHandler.Report)
	budgets.Get("/:month", budgetHandler.Get)
	budgets.Put("/:month", budgetHandler.Customize)

	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Delete("/:id", expenseHandler.Delete)

	goals := protected.Group("/goals")
	goalHandler := NewGoalHandler(deps.GoalUC)
	goals.Post("/", goalHandler.Create)
	goals.Get("/", goalHandler.List)
	goals.Post("/:id/contributions", goalHandler.Contribute)
	goals.Delete("/:id", goalHandler.Delete)

	debts := protected.Group("/debts")
	debtHandler := NewDebtHandler(deps.DebtUC)
	debts.Post("/", debtHandler.Create)
	debts.Get("/", debtHandler.List)
	debts.Post("/:id/payments", debtHandler.Pay)
	debts.Delete("/:id", debtHandler.Delete)

	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Put("/read-all", notificationHandler.MarkAllRead)
	notifications.Put("/:id/read", notificationHandler.MarkRead)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.AnalyticsUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
	protected.Get("/analytics/spending", dashboardHandler.GetSpendingReport)
}
