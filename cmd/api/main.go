package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dcportal/internal/auth"
	"dcportal/internal/cloudinary"
	"dcportal/internal/complaint"
	"dcportal/internal/config"
	"dcportal/internal/http/handlers"
	"dcportal/internal/httpmiddleware"
	"dcportal/internal/meeting"
	"dcportal/internal/ocrclient"
	"dcportal/internal/scan"
	"dcportal/internal/store"
	"dcportal/internal/user"
	"dcportal/migrations"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	db, err := store.NewDB(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Up(db.Client); err != nil {
		return err
	}

	redisClient := store.NewRedis(cfg.RedisAddr)

	users := user.NewRepository(db.Client)
	complaints := complaint.NewRepository(db.Client)
	meetings := meeting.NewRepository(db.Client)
	complaintSvc := complaint.NewService(complaints, users)
	meetingSvc := meeting.NewService(meetings)

	// Card scanning degrades to a configuration error response when the image
	// store is not set up; the manual entry path keeps working regardless.
	var scanner *scan.Service
	if cfg.CloudinaryCloudName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		cdn := cloudinary.New(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		ocr := ocrclient.New(cfg.OCRServiceURL, cfg.OCRSkip)
		scanner = scan.NewService(cdn, ocr, users)
		log.Println("card scanning enabled, cloud:", cfg.CloudinaryCloudName)
	} else {
		log.Println("card scanning disabled (CLOUDINARY_CLOUD_NAME / API_KEY / API_SECRET not set)")
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           24 * time.Hour,
	}))
	r.Use(securityHeaders())
	r.Use(httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin, "/healthz", "/metrics").GinMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		redisHealthy := redisClient.Healthy(c.Request.Context())
		dbHealthy := db.Client.PingContext(c.Request.Context()) == nil
		status := http.StatusOK
		if !redisHealthy || !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "redis": redisHealthy, "db": dbHealthy})
	})

	api := r.Group("/api")

	handlers.NewAuthHandler(users, cfg.JWTIssuer, cfg.JWTSigningKey, cfg.AccessTTL).Register(api.Group("/auth"))

	authed := auth.UserAuth(cfg.JWTSigningKey, cfg.JWTIssuer)

	studentGroup := api.Group("/student", authed, auth.RequireRole(user.RoleStudent))
	handlers.NewStudentHandler(complaints, complaintSvc, meetings, users, cfg.StudentWindow, cfg.AttendanceGrace).Register(studentGroup)

	facultyGroup := api.Group("/faculty", authed, auth.RequireRole(user.RoleFaculty))
	handlers.NewFacultyHandler(complaints, complaintSvc, meetings, users, scanner, cfg.FacultyWindow, cfg.AttendanceGrace).Register(facultyGroup)

	adminGroup := api.Group("/admin", authed, auth.RequireRole(user.RoleAdmin))
	handlers.NewAdminHandler(complaints, complaintSvc, meetings, meetingSvc, users, cfg.AttendanceGrace).Register(adminGroup)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}
