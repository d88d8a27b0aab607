package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/absensi-nh/absensi-backend-go/internal/config"
	appHTTP "github.com/absensi-nh/absensi-backend-go/internal/handler/http"
	"github.com/absensi-nh/absensi-backend-go/internal/pkg/cron"
	"github.com/absensi-nh/absensi-backend-go/internal/pkg/database"
	"github.com/absensi-nh/absensi-backend-go/internal/pkg/geocode"
	"github.com/absensi-nh/absensi-backend-go/internal/pkg/jwt"
	"github.com/absensi-nh/absensi-backend-go/internal/pkg/storage"
	"github.com/absensi-nh/absensi-backend-go/internal/repository/postgresql"
	announcementService "github.com/absensi-nh/absensi-backend-go/internal/service/announcement"
	attendanceService "github.com/absensi-nh/absensi-backend-go/internal/service/attendance"
	serviceAuth "github.com/absensi-nh/absensi-backend-go/internal/service/auth"
	dashboardService "github.com/absensi-nh/absensi-backend-go/internal/service/dashboard"
	employeeService "github.com/absensi-nh/absensi-backend-go/internal/service/employee"
	"github.com/absensi-nh/absensi-backend-go/internal/service/file"
	permitService "github.com/absensi-nh/absensi-backend-go/internal/service/permit"
	piketService "github.com/absensi-nh/absensi-backend-go/internal/service/piket"
	reportService "github.com/absensi-nh/absensi-backend-go/internal/service/report"
	"github.com/absensi-nh/absensi-backend-go/internal/service/schedule"
	swapService "github.com/absensi-nh/absensi-backend-go/internal/service/swap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	sessionRepo := postgresql.NewSessionRepository(db)
	piketRepo := postgresql.NewPiketRepository(db)
	swapRepo := postgresql.NewSwapRepository(db)
	permitRepo := postgresql.NewPermitRepository(db)
	announcementRepo := postgresql.NewAnnouncementRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	classifier := schedule.NewClassifier(cfg.Location(), schedule.Holidays2026)
	geocoder := geocode.NewClient(cfg.Geocode)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)
	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	sessionService := attendanceService.NewSessionService(db, sessionRepo, piketRepo, classifier, fileService, geocoder)
	recapService := reportService.NewRecapService(sessionRepo, userRepo, classifier)
	employeeSvc := employeeService.NewEmployeeService(userRepo, fileService)
	scheduleSvc := piketService.NewScheduleService(piketRepo, userRepo)
	swapSvc := swapService.NewSwapService(db, swapRepo, piketRepo, userRepo)
	permitSvc := permitService.NewPermitService(db, permitRepo, sessionRepo)
	announcementSvc := announcementService.NewAnnouncementService(announcementRepo, fileService)
	statsSvc := dashboardService.NewStatsService(userRepo, sessionRepo, permitRepo, swapRepo, classifier)

	handlers := appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authService),
		Attendance:   appHTTP.NewAttendanceHandler(sessionService),
		Report:       appHTTP.NewReportHandler(recapService),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Piket:        appHTTP.NewPiketHandler(scheduleSvc),
		Swap:         appHTTP.NewSwapHandler(swapSvc),
		Permit:       appHTTP.NewPermitHandler(permitSvc),
		Announcement: appHTTP.NewAnnouncementHandler(announcementSvc),
		Dashboard:    appHTTP.NewDashboardHandler(statsSvc),
	}

	scheduler := cron.NewScheduler()
	cron.NewSessionJobs(sessionRepo, cfg.Location()).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	uploadsPath := ""
	if cfg.Storage.Type == "local" {
		uploadsPath = cfg.Storage.BasePath
	}
	router := appHTTP.NewRouter(JWTService, handlers, uploadsPath)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
