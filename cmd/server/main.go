package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/api"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/config"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/database"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/notify"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/portal"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/repository"
	"github.com/qasitly/Installment-Sales-Manager-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	installmentRepo := repository.NewInstallmentRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	backupRepo := repository.NewBackupRepository(db)

	// Portal link sealer
	sealer, err := portal.NewTokenSealer(cfg.Portal.FernetKey, cfg.Portal.LinkTTL)
	if err != nil {
		log.Fatalf("Failed to create portal token sealer: %v", err)
	}

	// Create services
	systemService := service.NewSystemService(db, settingRepo)
	customerService := service.NewCustomerService(customerRepo, productRepo)
	productService := service.NewProductService(productRepo, customerRepo, catalogRepo)
	installmentService := service.NewInstallmentService(installmentRepo, productRepo)
	catalogService := service.NewCatalogService(catalogRepo)
	expenseService := service.NewExpenseService(expenseRepo)
	reportService := service.NewReportService(customerRepo, productRepo, expenseRepo)
	importService := service.NewImportService(backupRepo, customerRepo, productRepo, catalogRepo, expenseRepo)

	reminderService := service.NewReminderService(
		installmentRepo,
		productRepo,
		reminderRepo,
		settingRepo,
		notify.LogDispatcher{},
		service.ReminderOptions{
			UpcomingThresholdDays: cfg.Reminder.UpcomingThresholdDays,
			Cooldown:              cfg.Reminder.Cooldown,
			DispatchDelay:         cfg.Reminder.DispatchDelay,
			CountryCode:           cfg.Reminder.CountryCode,
			Currency:              cfg.Reminder.Currency,
		},
	)

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Customer:    customerService,
		Product:     productService,
		Installment: installmentService,
		Catalog:     catalogService,
		Expense:     expenseService,
		Report:      reportService,
		Reminder:    reminderService,
		Import:      importService,
		Sealer:      sealer,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Daily reminder sweep
	scheduler := cron.New()
	if cfg.Reminder.CronSpec != "" {
		_, err := scheduler.AddFunc(cfg.Reminder.CronSpec, func() {
			sent, err := reminderService.Dispatch(ctx, time.Now())
			if err != nil {
				log.Printf("Reminder sweep failed: %v", err)
				return
			}
			log.Printf("Reminder sweep dispatched %d reminders", len(sent))
		})
		if err != nil {
			log.Fatalf("Failed to schedule reminder sweep: %v", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		scheduler.Start()
		<-gctx.Done()
		<-scheduler.Stop().Done()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}

	log.Println("Server exited")
}
