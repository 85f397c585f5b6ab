package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/goodzwork/hr-backend-go/internal/config"
	appHTTP "github.com/goodzwork/hr-backend-go/internal/handler/http"
	"github.com/goodzwork/hr-backend-go/internal/pkg/database"
	"github.com/goodzwork/hr-backend-go/internal/pkg/facerec"
	"github.com/goodzwork/hr-backend-go/internal/pkg/jwt"
	"github.com/goodzwork/hr-backend-go/internal/pkg/storage"
	"github.com/goodzwork/hr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/goodzwork/hr-backend-go/internal/service/attendance"
	faceService "github.com/goodzwork/hr-backend-go/internal/service/face"
	payrollService "github.com/goodzwork/hr-backend-go/internal/service/payroll"
	settingsService "github.com/goodzwork/hr-backend-go/internal/service/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	// All calendar-day and clock math runs in the company timezone.
	location, err := time.LoadLocation(cfg.Company.Timezone)
	if err != nil {
		log.Fatal("Invalid COMPANY_TIMEZONE: ", err)
	}

	cascade, err := os.ReadFile(cfg.Face.CascadePath)
	if err != nil {
		log.Fatal("Failed to read face cascade: ", err)
	}
	detector, err := facerec.NewPigoDetector(cascade)
	if err != nil {
		log.Fatal("Failed to initialize face detector: ", err)
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage: ", err)
	}

	txManager := postgresql.NewTxManager(db)
	userRepo := postgresql.NewUserRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	profileRepo := postgresql.NewFaceProfileRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)

	settingsSvc := settingsService.NewSettingsService(settingsRepo, cfg.Company)
	faceSvc := faceService.NewFaceService(profileRepo, userRepo, txManager, detector, fileStorage, cfg.Face)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		userRepo,
		settingsSvc,
		faceSvc,
		fileStorage,
		location,
	)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, attendanceRepo, userRepo, location)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	faceHandler := appHTTP.NewFaceHandler(faceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:        cfg.App.Env,
			UploadsDir: cfg.Storage.BasePath,
		},
		jwtService,
		attendanceHandler,
		faceHandler,
		payrollHandler,
		settingsHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
