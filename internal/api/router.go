package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/api/handlers"
	custommiddleware "github.com/qasitly/Installment-Sales-Manager-Backend/internal/api/middleware"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/config"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/model"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/portal"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/service"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	System      *service.SystemService
	Customer    *service.CustomerService
	Product     *service.ProductService
	Installment *service.InstallmentService
	Catalog     *service.CatalogService
	Expense     *service.ExpenseService
	Report      *service.ReportService
	Reminder    *service.ReminderService
	Import      *service.ImportService
	Sealer      *portal.TokenSealer
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System, map[string]string{
				model.SettingCurrency:             cfg.Reminder.Currency,
				model.SettingCountryCode:          cfg.Reminder.CountryCode,
				model.SettingReminderUpcomingDays: strconv.Itoa(cfg.Reminder.UpcomingThresholdDays),
			})
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
			r.Get("/settings", systemHandler.Settings)
			r.Put("/settings", systemHandler.UpdateSettings)
		})

		r.Route("/customers", func(r chi.Router) {
			customerHandler := handlers.NewCustomerHandler(svc.Customer)
			r.Get("/", customerHandler.List)
			r.Post("/", customerHandler.Create)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", customerHandler.Get)
				r.Put("/", customerHandler.Update)
				r.Delete("/", customerHandler.Delete)
			})
		})

		r.Route("/purchases", func(r chi.Router) {
			purchaseHandler := handlers.NewPurchaseHandler(svc.Product)
			portalHandler := handlers.NewPortalHandler(svc.Product, svc.Sealer)
			installmentHandler := handlers.NewInstallmentHandler(svc.Installment)
			r.Post("/", purchaseHandler.Create)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", purchaseHandler.Get)
				r.Delete("/", purchaseHandler.Delete)
				r.Post("/installments", installmentHandler.Add)
				r.Post("/link", portalHandler.CreateShareLink)
			})
		})

		r.Route("/installments", func(r chi.Router) {
			installmentHandler := handlers.NewInstallmentHandler(svc.Installment)
			r.Put("/status", installmentHandler.BulkStatus)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Post("/payments", installmentHandler.Pay)
				r.Put("/", installmentHandler.Edit)
			})
		})

		r.Route("/catalog", func(r chi.Router) {
			catalogHandler := handlers.NewCatalogHandler(svc.Catalog)
			r.Get("/", catalogHandler.List)
			r.Post("/", catalogHandler.Create)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", catalogHandler.Get)
				r.Put("/", catalogHandler.Update)
				r.Delete("/", catalogHandler.Delete)
			})
		})

		r.Route("/expenses", func(r chi.Router) {
			expenseHandler := handlers.NewExpenseHandler(svc.Expense)
			r.Get("/", expenseHandler.List)
			r.Post("/", expenseHandler.Create)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Delete("/", expenseHandler.Delete)
			})
		})

		reminderHandler := handlers.NewReminderHandler(svc.Reminder)
		r.Get("/notifications", reminderHandler.Notifications)
		r.Route("/reminders", func(r chi.Router) {
			r.Get("/due", reminderHandler.Due)
			r.Post("/dispatch", reminderHandler.Dispatch)
			r.Get("/log", reminderHandler.Log)
		})

		r.Route("/portal", func(r chi.Router) {
			portalHandler := handlers.NewPortalHandler(svc.Product, svc.Sealer)
			r.Get("/shared/{token}", portalHandler.ViewShared)
			r.Get("/{portalId}", portalHandler.View)
		})

		r.Route("/backup", func(r chi.Router) {
			backupHandler := handlers.NewBackupHandler(svc.Import)
			r.Get("/export", backupHandler.Export)
			r.Post("/restore", backupHandler.Restore)
		})

		r.Route("/reports", func(r chi.Router) {
			reportHandler := handlers.NewReportHandler(svc.Report)
			r.Get("/summary", reportHandler.Summary)
			r.Get("/dashboard", reportHandler.Dashboard)
		})
	})

	return r
}
