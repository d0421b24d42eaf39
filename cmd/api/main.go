package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"github.com/jobvista/backend/internal/auth"
	"github.com/jobvista/backend/internal/config"
	"github.com/jobvista/backend/internal/database"
	"github.com/jobvista/backend/internal/handlers"
	"github.com/jobvista/backend/internal/models"
	"github.com/jobvista/backend/internal/queue"
	"github.com/jobvista/backend/internal/services"
	"github.com/jobvista/backend/internal/storage"
)

func main() {
	// 1. Load Environment Variables
	cfg := config.Load()

	// 2. Database Connection
	db := database.Connect(cfg.DatabaseURL)

	// 3. File Storage
	store, err := storage.New(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatalf("failed to set up upload storage: %v", err)
	}

	// 4. External ML Collaborators
	vectorClient := services.NewVectorClient(cfg.MLBackendURL)
	predictClient := services.NewPredictClient(cfg.MLBackendURL)

	// 5. Email
	smtpSender := services.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	emailService := services.NewEmailService(smtpSender, cfg.PublicBaseURL)

	// 6. Prediction Queue & Worker
	mq, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mq.Close()

	worker := queue.NewWorker(db, predictClient)
	if err := mq.Consume(worker.Handle); err != nil {
		log.Fatalf("failed to start prediction consumer: %v", err)
	}

	// 7. Initialize Core Services (Dependencies)
	userService := services.NewUserService(db, cfg.JWTSecret)
	jobService := services.NewJobService(db, vectorClient, cfg.PublicBaseURL)
	resumeService := services.NewResumeService(db, vectorClient, predictClient, mq)
	employeeService := services.NewEmployeeService(db, emailService, mq)
	notificationService := services.NewNotificationService(db)
	feedbackService := services.NewFeedbackService(db)
	learnService := services.NewLearnService(db, predictClient)

	// 8. Initialize Handlers
	userHandler := handlers.NewUserHandler(userService, store)
	jobHandler := handlers.NewJobHandler(jobService, store)
	resumeHandler := handlers.NewResumeHandler(resumeService, store)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	learnHandler := handlers.NewLearnHandler(learnService)

	// 9. Setup Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // For development only
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	registerValidators()

	authRequired := auth.Middleware(cfg.JWTSecret)

	// Uploaded logos, resumes and videos are served straight off disk.
	r.Static("/uploads", store.Dir())

	// 10. Define Routes
	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		users := api.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.PUT("/upload-image/:userId", userHandler.UploadImage)
			users.PUT("/apply-job", userHandler.ApplyJob)
			users.GET("/applied-jobs/:userId", userHandler.AppliedJobs)
		}

		jobs := api.Group("/jobs")
		{
			jobs.POST("/create", jobHandler.Create)
			jobs.POST("/search", jobHandler.Search)
			jobs.GET("/all", jobHandler.All)
			jobs.GET("/user/:userId", jobHandler.ByCreator)
			jobs.PUT("/update-user-status/:jobId", jobHandler.UpdateUserStatus)
			jobs.GET("/:id", jobHandler.ByID)
			jobs.PUT("/:id", jobHandler.Update)
			jobs.DELETE("/:job_id", jobHandler.Delete)
		}

		resumes := api.Group("/resumes")
		{
			resumes.POST("/create-resume-pdf", authRequired, resumeHandler.CreateFromPDF)
			resumes.POST("/create-resume-text", authRequired, resumeHandler.CreateFromText)
			resumes.POST("/search-resumes", resumeHandler.Search)
			resumes.POST("/search-recommended-resume", resumeHandler.Recommend)
			resumes.PUT("/upload-video/:userId/:jobId", resumeHandler.UploadVideo)
			resumes.PUT("/update-personality-text", resumeHandler.UpdatePersonalityText)
			resumes.GET("/ocr-content/:id", resumeHandler.OCRContent)
			resumes.GET("/:id", resumeHandler.Details)
			resumes.GET("/:id/applicants", resumeHandler.Applicants)
		}

		employee := api.Group("/employee")
		{
			employee.POST("/add-employee-details", employeeHandler.Add)
			employee.PUT("/update-employee-details", employeeHandler.UpdateQualities)
			employee.GET("/get-employee-details/:userId", employeeHandler.Get)
		}

		notification := api.Group("/notification")
		{
			notification.POST("/accept-job", notificationHandler.AcceptJob)
			notification.PUT("/update-status", notificationHandler.UpdateStatus)
			notification.GET("/:userId", notificationHandler.ForUser)
		}

		feedbacks := api.Group("/feedbacks")
		{
			feedbacks.POST("/add", feedbackHandler.Add)
			feedbacks.GET("/my-feedbacks", authRequired, feedbackHandler.Mine)
			feedbacks.GET("/all", feedbackHandler.All)
		}

		learn := api.Group("/learn")
		{
			learn.POST("/learning-type", authRequired, learnHandler.SaveLearningType)
			learn.PUT("/update-learning-type", authRequired, learnHandler.UpdateLearningType)
			learn.PUT("/update-filename/:userId", learnHandler.UpdateFilename)
			learn.PUT("/get-questions", authRequired, learnHandler.FetchQuestions)
			learn.PUT("/submit-quiz", authRequired, learnHandler.SubmitQuiz)
			learn.GET("/get-quiz-results", authRequired, learnHandler.Results)
			learn.GET("/get-quiz-results/:id", learnHandler.ResultsForUser)
		}
	}

	log.Infof("server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server failed to start: %v", err)
	}
}

// registerValidators wires custom binding rules into gin's validator.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("roletype", func(fl validator.FieldLevel) bool {
		role := fl.Field().String()
		return role == models.RoleJobSeeker || role == models.RoleRecruiter
	})
}
