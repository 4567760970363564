package main

import (
	"log"
	"strings"

	"github.com/educonnect/backend/internal/config"
	"github.com/educonnect/backend/internal/handler"
	"github.com/educonnect/backend/internal/middleware"
	"github.com/educonnect/backend/internal/model"
	"github.com/educonnect/backend/internal/repository"
	"github.com/educonnect/backend/internal/service"
	"github.com/educonnect/backend/internal/token"
	"github.com/educonnect/backend/pkg/database"
	"github.com/educonnect/backend/pkg/mailer"
	"github.com/educonnect/backend/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := seedAdmin(db); err != nil {
			log.Fatalf("failed to seed admin: %v", err)
		}
	}

	rdb, err := connectRedis(cfg)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	var mail mailer.Mailer = mailer.Noop{}
	if cfg.ResendAPIKey != "" {
		mail = mailer.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom)
	} else {
		log.Println("RESEND_API_KEY not set, outgoing mail is disabled")
	}

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Printf("cloudinary storage unavailable, profile pictures disabled: %v", err)
		imageStorage = nil
	}

	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := repository.NewUserRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)

	subjects := service.NewSubjectResolver(userRepo, adminRepo)
	authService := service.NewAuthService(userRepo, adminRepo, sequenceRepo, imageStorage, tokens, cfg.CloudinaryUploadFolder)
	otpService := service.NewOTPService(rdb, userRepo, mail, cfg.OTPTTL, cfg.OTPSendInterval)
	courseService := service.NewCourseService(courseRepo, sequenceRepo, subjects)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo, userRepo, sequenceRepo, mail)
	profileService := service.NewProfileService(userRepo, imageStorage, cfg.CloudinaryUploadFolder)

	authHandler := handler.NewAuthHandler(authService, otpService, subjects)
	courseHandler := handler.NewCourseHandler(courseService)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)
	profileHandler := handler.NewProfileHandler(profileService)

	authMiddleware := middleware.NewAuthMiddleware(tokens)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins: strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}))

	router.POST("/login", authHandler.Login)
	router.POST("/register", authHandler.Register)
	router.POST("/send-otp", authHandler.SendOTP)
	router.POST("/verify-otp", authHandler.VerifyOTP)
	router.POST("/new-password-send-otp", authHandler.SendPasswordResetOTP)
	router.POST("/reset-password", authHandler.ResetPassword)

	protected := router.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/appbar-userdetails", authHandler.UserDetails)

		admin := protected.Group("/admin")
		admin.Use(authMiddleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/courses", courseHandler.ListCourses)
			admin.POST("/add-courses", courseHandler.AddCourse)
			admin.PUT("/edit-courses/:courseid", courseHandler.EditCourse)
			admin.DELETE("/delete-courses/:courseid", courseHandler.DeleteCourse)
		}

		user := protected.Group("/user")
		user.Use(authMiddleware.RequireRole(model.RoleStudent))
		{
			user.GET("/get-unenrolled-courses", enrollmentHandler.UnenrolledCourses)
			user.POST("/enroll-course", enrollmentHandler.Enroll)
			user.GET("/enrolled-courses", enrollmentHandler.EnrolledCourses)
			user.DELETE("/unenroll-course/:enrollid", enrollmentHandler.Unenroll)
			user.POST("/update-profile", profileHandler.UpdateProfile)
		}
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Admin{},
		&model.Course{},
		&model.Enrollment{},
		&model.Sequence{},
	)
}

func connectRedis(cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: "localhost:6379"}), nil
}

// seedAdmin provisions a development admin account. Admins have no exposed
// registration flow.
func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Admin{}).
		Where("email = ?", "admin@educonnect.dev").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("admin already exists, skipping seed")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.Admin{
		AdminID:  "ADM100",
		Name:     "Administrator",
		Email:    "admin@educonnect.dev",
		Password: string(hashedPassword),
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("admin account seeded")
	log.Println("   Email: admin@educonnect.dev")
	log.Println("   Password: admin123")

	return nil
}
