package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/rotasync/rotasync-backend-go/internal/config"
	appHTTP "github.com/rotasync/rotasync-backend-go/internal/handler/http"
	"github.com/rotasync/rotasync-backend-go/internal/pkg/cron"
	"github.com/rotasync/rotasync-backend-go/internal/pkg/database"
	"github.com/rotasync/rotasync-backend-go/internal/pkg/google"
	"github.com/rotasync/rotasync-backend-go/internal/pkg/jwt"
	"github.com/rotasync/rotasync-backend-go/internal/repository/postgresql"
	rotaService "github.com/rotasync/rotasync-backend-go/internal/service/rota"
	syncService "github.com/rotasync/rotasync-backend-go/internal/service/sync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	roster, err := config.LoadRoster(cfg.Sync.RosterFile)
	if err != nil {
		fmt.Println("Error loading roster:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	staffRepo := postgresql.NewStaffRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	syncRunRepo := postgresql.NewSyncRunRepository(db)

	ctx := context.Background()
	sheetsClient, err := google.NewSheetsClient(ctx, cfg.Google.ServiceAccountFile, cfg.Google.SpreadsheetID, cfg.Google.RangeName)
	if err != nil {
		log.Fatal("Failed to initialize Sheets client: ", err)
	}
	calendarClient, err := google.NewCalendarClient(ctx, cfg.Google.ServiceAccountFile, cfg.Google.Timezone)
	if err != nil {
		log.Fatal("Failed to initialize Calendar client: ", err)
	}

	location, err := time.LoadLocation(cfg.Google.Timezone)
	if err != nil {
		log.Fatal("Failed to load rota timezone: ", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	parser := rotaService.NewTableParser(sheetsClient, cfg.Sync.WindowDays, location, nil)
	syncSvc := syncService.NewSyncService(
		parser,
		calendarClient,
		staffRepo,
		shiftRepo,
		syncRunRepo,
		roster,
		cfg.Google.Timezone,
		cfg.Sync.Workers,
	)

	authHandler := appHTTP.NewAuthHandler(JWTService, cfg.Admin)
	syncHandler := appHTTP.NewSyncHandler(syncSvc, syncRunRepo)
	staffHandler := appHTTP.NewStaffHandler(staffRepo, shiftRepo)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		syncHandler,
		staffHandler,
		cfg.App.Env,
	)

	scheduler := cron.NewScheduler()
	cron.NewRotaJobs(syncSvc).RegisterJobs(scheduler, cfg.Sync.Interval)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
