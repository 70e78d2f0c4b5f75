package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/hrslabs/kiffscore/internal/auth"
	database "github.com/hrslabs/kiffscore/internal/db"
	"github.com/hrslabs/kiffscore/internal/finance/application"
	"github.com/hrslabs/kiffscore/internal/finance/infrastructure"
	"github.com/hrslabs/kiffscore/internal/finance/interfaces"
	"github.com/hrslabs/kiffscore/internal/kiff"
	"github.com/hrslabs/kiffscore/internal/permissions"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type Server struct {
	router             *http.ServeMux
	jwtManager         *auth.JWTManager
	transactionHandler *interfaces.TransactionHandler
	settingsHandler    *interfaces.SettingsHandler
	scoreHandler       *interfaces.ScoreHandler
	dbService          *database.DBService
}

func NewServer(
	jwtManager *auth.JWTManager,
	transactionHandler *interfaces.TransactionHandler,
	settingsHandler *interfaces.SettingsHandler,
	scoreHandler *interfaces.ScoreHandler,
	dbService *database.DBService,
) *Server {
	return &Server{
		router:             http.NewServeMux(),
		jwtManager:         jwtManager,
		transactionHandler: transactionHandler,
		settingsHandler:    settingsHandler,
		scoreHandler:       scoreHandler,
		dbService:          dbService,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET Provided")
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		return errors.New("no DB_CONNECTION_STRING Provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	health := s.dbService.Health()
	if health["status"] != "up" {
		respondError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

func (s *Server) RegisterRoutes() {
	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	protectedRoutes := http.NewServeMux()
	withAuth := s.jwtManager.JWTAccessTokenMiddleware()

	// TRANSACTIONS API
	protectedRoutes.Handle("POST /api/protected/transactions",
		withAuth(http.HandlerFunc(s.transactionHandler.CreateTransaction)))

	protectedRoutes.Handle("GET /api/protected/transactions",
		withAuth(http.HandlerFunc(s.transactionHandler.GetUserTransactions)))

	protectedRoutes.Handle("GET /api/protected/transactions/{transactionID}",
		withAuth(http.HandlerFunc(s.transactionHandler.GetTransaction)))

	protectedRoutes.Handle("PUT /api/protected/transactions/{transactionID}",
		withAuth(http.HandlerFunc(s.transactionHandler.UpdateTransaction)))

	protectedRoutes.Handle("DELETE /api/protected/transactions/{transactionID}",
		withAuth(http.HandlerFunc(s.transactionHandler.DeleteTransaction)))

	// BANK ACCOUNTS API
	protectedRoutes.Handle("POST /api/protected/banks",
		withAuth(http.HandlerFunc(s.settingsHandler.CreateBankAccount)))

	protectedRoutes.Handle("GET /api/protected/banks",
		withAuth(http.HandlerFunc(s.settingsHandler.GetBankAccounts)))

	protectedRoutes.Handle("PUT /api/protected/banks/{bankID}",
		withAuth(http.HandlerFunc(s.settingsHandler.UpdateBankAccount)))

	protectedRoutes.Handle("DELETE /api/protected/banks/{bankID}",
		withAuth(http.HandlerFunc(s.settingsHandler.DeleteBankAccount)))

	// CATEGORIES API
	protectedRoutes.Handle("POST /api/protected/categories",
		withAuth(http.HandlerFunc(s.settingsHandler.CreateCategory)))

	protectedRoutes.Handle("GET /api/protected/categories",
		withAuth(http.HandlerFunc(s.settingsHandler.GetCategories)))

	protectedRoutes.Handle("PUT /api/protected/categories/{categoryID}",
		withAuth(http.HandlerFunc(s.settingsHandler.UpdateCategory)))

	protectedRoutes.Handle("DELETE /api/protected/categories/{categoryID}",
		withAuth(http.HandlerFunc(s.settingsHandler.DeleteCategory)))

	// KIFF SCORE API
	protectedRoutes.Handle("GET /api/protected/kiff-score",
		withAuth(http.HandlerFunc(s.scoreHandler.GetKiffScore)))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	jwtManager := auth.NewJWTManager()
	permsManager := permissions.New()

	accountRepo := infrastructure.NewBankAccountRepository(dbService.DB)
	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)
	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)

	ledgerService := application.NewLedgerService(transactionRepo, accountRepo, categoryRepo)
	accountService := application.NewBankAccountService(accountRepo, transactionRepo)
	categoryService := application.NewCategoryService(categoryRepo, transactionRepo)
	scorer := kiff.NewScorer(accountRepo, transactionRepo)

	transactionHandler := interfaces.NewTransactionHandler(ledgerService, permsManager, respondJSON, respondError)
	settingsHandler := interfaces.NewSettingsHandler(accountService, categoryService, permsManager, respondJSON, respondError)
	scoreHandler := interfaces.NewScoreHandler(scorer, permsManager, respondJSON, respondError)

	server := NewServer(jwtManager, transactionHandler, settingsHandler, scoreHandler, dbService)
	server.RegisterRoutes()

	reconciler := application.NewBalanceReconciler(accountRepo, transactionRepo)
	if err := StartReconcilerScheduler(reconciler); err != nil {
		log.Fatalf("Scheduler didn't start, stoping the app ...")
	}

	handler := loggingMiddleware(http.HandlerFunc(server.router.ServeHTTP))
	log.Println("Server starting on port 8080...")
	if err := http.ListenAndServe(":8080", handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func StartReconcilerScheduler(reconciler *application.BalanceReconciler) error {
	c := cron.New()
	// Schedule the sweep to run every 6 hours
	_, err := c.AddFunc("@every 6h", func() {
		reconciler.SweepAndLog()
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}
