package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"estradaLeveAPI/handlers"
	"estradaLeveAPI/internal/notification"
	"estradaLeveAPI/internal/workers"
	"estradaLeveAPI/middleware"
	"estradaLeveAPI/services"

	_ "net/http/pprof"
)

var (
	dbPool              *pgxpool.Pool
	fcmService          *notification.FCMService
	notificationService *services.NotificationService
	scoringService      *services.ScoringService
	userService         *services.UserService
	socialService       *services.SocialService
	measurementService  *services.MeasurementService
	activityService     *services.ActivityService
	mealService         *services.MealService
	goalService         *services.GoalService
	workoutService      *services.WorkoutService
	resourceService     *services.ResourceService
	shoppingService     *services.ShoppingService
	leaderboardService  *services.LeaderboardService
	mediaService        *services.MediaService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	clerkSecretKey := os.Getenv("CLERK_SECRET_KEY")
	if clerkSecretKey == "" {
		log.Fatal("CLERK_SECRET_KEY environment variable is not set")
	}
	clerk.SetKey(clerkSecretKey)
	log.Println("Clerk initialized successfully")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool:", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Successfully connected to database")

	fcmService, err = notification.NewFCMService("./serviceAccountKey.json")
	if err != nil {
		log.Printf("Warning: Could not initialize FCM: %v", err)
		fcmService = nil
	} else {
		log.Println("FCM Push Provider initialized successfully")
	}

	mediaService, err = services.NewMediaService()
	if err != nil {
		log.Printf("Warning: Could not initialize Cloudinary: %v", err)
	}

	notificationService = services.NewNotificationService(dbPool, fcmService)
	scoringService = services.NewScoringService(dbPool, notificationService)
	userService = services.NewUserService(dbPool)
	socialService = services.NewSocialService(dbPool, scoringService)
	measurementService = services.NewMeasurementService(dbPool, scoringService, socialService)
	activityService = services.NewActivityService(dbPool, scoringService, socialService)
	mealService = services.NewMealService(dbPool, scoringService, socialService)
	goalService = services.NewGoalService(dbPool, scoringService)
	workoutService = services.NewWorkoutService(dbPool, scoringService, socialService, mediaService)
	resourceService = services.NewResourceService(dbPool, scoringService, socialService, mediaService)
	shoppingService = services.NewShoppingService(dbPool)
	leaderboardService = services.NewLeaderboardService(dbPool)

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	workers.StartNotificationCleanup(workerCtx, notificationService)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	activityHandler := handlers.NewActivityHandler(activityService)
	mealHandler := handlers.NewMealHandler(mealService)
	measurementHandler := handlers.NewMeasurementHandler(measurementService)
	goalHandler := handlers.NewGoalHandler(goalService)
	socialHandler := handlers.NewSocialHandler(socialService)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)
	resourceHandler := handlers.NewResourceHandler(resourceService, userService)
	rankingHandler := handlers.NewRankingHandler(leaderboardService, scoringService, userService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, userService)
	shoppingHandler := handlers.NewShoppingHandler(shoppingService)
	webhookHandler := handlers.NewWebhookHandler(userService)
	docsHandler := handlers.NewDocsHandler()

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))
	r.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(http.DefaultServeMux))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "estradaLeve-api"}`))
	}).Methods("GET")

	r.HandleFunc("/webhooks/clerk", webhookHandler.HandleClerkWebhook).Methods("POST")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/privacy-policy", docsHandler.ServePrivacyPolicy).Methods("GET")
	api.HandleFunc("/min-version", docsHandler.GetAppMinVersion).Methods("GET")

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.ClerkAuthMiddleware)

	protected.HandleFunc("/user", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/user/stats", userHandler.GetStats).Methods("GET")
	protected.HandleFunc("/user/onboarding", userHandler.CompleteOnboarding).Methods("POST")
	protected.HandleFunc("/user/update-profile", userHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/user/delete-account", userHandler.DeleteAccount).Methods("DELETE")
	protected.HandleFunc("/user/all", userHandler.GetAllUsers).Methods("GET")

	protected.HandleFunc("/activities", activityHandler.List).Methods("GET")
	protected.HandleFunc("/activities", activityHandler.Add).Methods("POST")
	protected.HandleFunc("/activities/{id}/toggle", activityHandler.Toggle).Methods("PUT")

	protected.HandleFunc("/meals", mealHandler.List).Methods("GET")
	protected.HandleFunc("/meals", mealHandler.Log).Methods("POST")
	protected.HandleFunc("/meals/{id}/consume", mealHandler.ToggleConsumed).Methods("PUT")

	protected.HandleFunc("/measurements", measurementHandler.Record).Methods("POST")
	protected.HandleFunc("/measurements/history", measurementHandler.History).Methods("GET")

	protected.HandleFunc("/goals/daily", goalHandler.GetDailyGoals).Methods("GET")
	protected.HandleFunc("/goals/daily/{type}/progress", goalHandler.RegisterProgress).Methods("POST")

	protected.HandleFunc("/social/posts", socialHandler.GetPosts).Methods("GET")
	protected.HandleFunc("/social/posts", socialHandler.AddPost).Methods("POST")
	protected.HandleFunc("/social/posts/{id}/like", socialHandler.ToggleLike).Methods("POST")
	protected.HandleFunc("/social/posts/{id}/comments", socialHandler.GetComments).Methods("GET")
	protected.HandleFunc("/social/posts/{id}/comments", socialHandler.AddComment).Methods("POST")

	protected.HandleFunc("/workouts", workoutHandler.Recent).Methods("GET")
	protected.HandleFunc("/workouts", workoutHandler.Upload).Methods("POST")
	protected.HandleFunc("/workouts/{id}/like", workoutHandler.ToggleLike).Methods("POST")
	protected.HandleFunc("/workouts/{id}/comments", workoutHandler.GetComments).Methods("GET")
	protected.HandleFunc("/workouts/{id}/comments", workoutHandler.AddComment).Methods("POST")

	protected.HandleFunc("/resources", resourceHandler.List).Methods("GET")
	protected.HandleFunc("/resources", resourceHandler.Publish).Methods("POST")
	protected.HandleFunc("/resources/upload", resourceHandler.UploadFile).Methods("POST")

	protected.HandleFunc("/ranking/winner", rankingHandler.Winner).Methods("GET")
	protected.HandleFunc("/ranking/most-active", rankingHandler.MostActive).Methods("GET")
	protected.HandleFunc("/medals", rankingHandler.GetMedals).Methods("GET")
	protected.HandleFunc("/level", rankingHandler.GetLevel).Methods("GET")

	protected.HandleFunc("/notifications", notificationHandler.List).Methods("GET")
	protected.HandleFunc("/notifications", notificationHandler.Broadcast).Methods("POST")
	protected.HandleFunc("/notifications/{id}", notificationHandler.Delete).Methods("DELETE")
	protected.HandleFunc("/notifications/register-device", notificationHandler.RegisterDevice).Methods("POST")

	protected.HandleFunc("/shopping", shoppingHandler.List).Methods("GET")
	protected.HandleFunc("/shopping", shoppingHandler.Add).Methods("POST")
	protected.HandleFunc("/shopping/{id}/toggle", shoppingHandler.Toggle).Methods("PUT")
	protected.HandleFunc("/shopping/{id}", shoppingHandler.Delete).Methods("DELETE")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
