package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"Flexura/internal/archive"
	"Flexura/internal/auth"
	"Flexura/internal/batch"
	"Flexura/internal/beam/analysis"
	"Flexura/internal/export"
	"Flexura/internal/metrics"
	"Flexura/internal/report"
	"Flexura/internal/repo"
	"Flexura/internal/secrets"
)

var wg sync.WaitGroup

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware records every routed request under its path template
// and status class.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		metrics.RequestsTotal.WithLabelValues(route, fmt.Sprintf("%dxx", rec.status/100)).Inc()
	})
}

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(router *mux.Router, db *sql.DB, tokenKey string) {
	store := repo.NewPostgresDB(db)
	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: store}

	limiter := auth.NewIPRateLimiter(1, 3)

	router.Use(metricsMiddleware)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	analysisH := &analysis.Handler{}
	api.HandleFunc("/analyze", analysisH.Analyze).Methods("POST")
	api.HandleFunc("/validate", analysisH.Validate).Methods("POST")
	api.HandleFunc("/beam-types", analysisH.BeamTypes).Methods("GET")
	api.HandleFunc("/materials", analysisH.Materials).Methods("GET")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	archiveH := &archive.Handler{Repo: store}
	secureApi.HandleFunc("/analyses", archiveH.Save).Methods("POST")
	secureApi.HandleFunc("/analyses", archiveH.List).Methods("GET")
	secureApi.HandleFunc("/analyses/{id:[0-9]+}", archiveH.Get).Methods("GET")

	reportH := &report.Handler{}
	exportH := &export.Handler{}
	batchH := &batch.Handler{}
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")
	secureApi.HandleFunc("/tools/export/xlsx", exportH.XLSX).Methods("POST")
	secureApi.HandleFunc("/tools/import/xlsx", batchH.Import).Methods("POST")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on environment")
	}

	cfg, err := secrets.Load(os.Getenv("SECRETS_CONFIG"))
	if err != nil {
		log.Fatal("config error: ", err)
	}
	client := secrets.NewClient(cfg)
	tokenKey, err := client.Get(ctx, "TOKEN_KEY")
	if err != nil {
		log.Fatal("TOKEN_KEY is not resolvable: ", err)
	}
	if dbURL, err := client.Get(ctx, "DATABASE_URL"); err == nil {
		os.Setenv("DATABASE_URL", dbURL)
	}

	db := auth.InitDB()
	defer db.Close()

	router := mux.NewRouter()
	HandleList(router, db, tokenKey)
	handler := CORS(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	log.Println("Starting server on :" + port)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
