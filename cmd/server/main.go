package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"

	config "github.com/cambrewitt-ship-it/contentflow/configs"
	"github.com/cambrewitt-ship-it/contentflow/internal/api/handlers"
	"github.com/cambrewitt-ship-it/contentflow/internal/api/middleware"
	job "github.com/cambrewitt-ship-it/contentflow/internal/jobs"
	"github.com/cambrewitt-ship-it/contentflow/internal/queue"
	"github.com/cambrewitt-ship-it/contentflow/internal/repository"
	"github.com/cambrewitt-ship-it/contentflow/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()
	handlers.Configure(cfg.Environment)

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Internal server error",
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return origin == cfg.FrontendURL
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
	}))

	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	postRepo := repository.NewPostRepository(db)
	approvalRepo := repository.NewApprovalRepository(db)
	uploadRepo := repository.NewUploadRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	publishHistoryRepo := repository.NewPublishHistoryRepository(db)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	r2Service := service.NewR2Service(*cfg)
	clientService := service.NewClientService(clientRepo, subscriptionRepo, *r2Service)
	projectService := service.NewProjectService(projectRepo, clientRepo)
	lateService := service.NewLateService(*cfg, postRepo, clientRepo, publishHistoryRepo)
	postService := service.NewPostService(postRepo, clientRepo, approvalRepo, subscriptionRepo, publishHistoryRepo, lateService)
	approvalService := service.NewApprovalService(db, approvalRepo, postRepo, clientRepo, activityRepo)
	uploadService := service.NewUploadService(db, uploadRepo, clientRepo, approvalRepo, activityRepo, *r2Service)
	activityService := service.NewActivityService(activityRepo, clientRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo)
	stripeService := service.NewStripeService(*cfg, subscriptionRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)

	// client portal routes: reachable with a session or portal token only,
	// so they sit in front of the authenticated /api group
	portal := handlers.NewPortalHandler(approvalService, uploadService)
	app.Get("/api/portal/:token/posts", portal.ListPendingPosts)
	app.Post("/api/portal/:token/posts/:id/decision", portal.Decide)
	app.Post("/api/portal/:token/uploads", portal.Upload)

	subscription := handlers.NewSubscriptionHandler(subscriptionService, stripeService, userService)
	app.Post("/api/stripe/webhook", subscription.StripeWebhook)

	cronJobs := handlers.NewCronHandler(subscriptionService, cfg.CronSecret)
	app.Post("/api/cron/expire-trials", cronJobs.ExpireTrials)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)
	api.Delete("/user", user.RemoveUser)

	clients := handlers.NewClientHandler(clientService, activityService)
	api.Post("/clients", clients.CreateClient)
	api.Get("/clients", clients.ListClients)
	api.Get("/clients/unread-counts", clients.UnreadCounts)
	api.Get("/clients/:id", clients.GetClient)
	api.Patch("/clients/:id", clients.UpdateClient)
	api.Delete("/clients/:id", clients.RemoveClient)
	api.Post("/clients/:id/logo", clients.UploadLogo)
	api.Post("/clients/:id/mark-viewed", clients.MarkViewed)

	projects := handlers.NewProjectHandler(projectService)
	api.Post("/projects", projects.CreateProject)
	api.Get("/projects", projects.ListProjects)
	api.Get("/projects/:id", projects.GetProject)
	api.Patch("/projects/:id", projects.UpdateProject)
	api.Delete("/projects/:id", projects.RemoveProject)

	post := handlers.NewPostHandler(postService, client)
	api.Post("/posts", post.CreatePost)
	api.Get("/posts", post.ListPosts)
	api.Get("/posts/:id", post.GetPost)
	api.Patch("/posts/:id", post.UpdatePost)
	api.Delete("/posts/:id", post.RemovePost)
	api.Post("/posts/:id/schedule", post.SchedulePost)
	api.Post("/posts/:id/publish", post.PublishPost)
	api.Post("/posts/:id/revisions", post.AddRevision)
	api.Get("/posts/:id/revisions", post.ListRevisions)
	api.Get("/posts/:id/approvals", portal.ListApprovals)
	api.Get("/posts/:id/publish-history", post.ListPublishHistory)

	api.Post("/portal/sessions", portal.CreateSession)

	uploads := handlers.NewUploadHandler(uploadService)
	api.Get("/clients/:id/uploads", uploads.ListUploads)
	api.Post("/clients/:id/uploads", uploads.CreateUpload)
	api.Post("/uploads/:id/review", uploads.MarkReviewed)

	api.Get("/subscription", subscription.GetSubscription)
	api.Post("/subscription/trial", subscription.StartTrial)
	api.Post("/subscription/checkout", subscription.CreateCheckout)
	api.Post("/subscription/portal", subscription.CreatePortal)
	api.Post("/credits/deduct", subscription.DeductCredits)

	late := handlers.NewLateHandler(lateService)
	api.Get("/late/accounts", late.ListAccounts)

	// cron jobs
	trialExpiryJob := job.NewTrialExpiryJob(subscriptionService)

	//queue
	queueW := queue.NewQueue(lateService)

	c := cron.New()
	c.AddFunc("@every 01h00m00s", trialExpiryJob.ExpireTrials)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
