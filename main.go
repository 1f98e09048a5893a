package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"CasingSafe/internal/auth"
	"CasingSafe/internal/calc/assessment"
	"CasingSafe/internal/calc/corrosion"
	"CasingSafe/internal/calc/erosion"
	"CasingSafe/internal/calc/failure"
	"CasingSafe/internal/calc/importer"
	"CasingSafe/internal/calc/pressure"
	"CasingSafe/internal/calc/report"
	"CasingSafe/internal/calc/wear"
	"CasingSafe/internal/config"
	"CasingSafe/internal/logging"
	"CasingSafe/internal/repo"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

// ToolRoutes registers the calculators. Kept apart from auth so it can be mounted in tests.
func ToolRoutes(tools *mux.Router) {
	erosionH := &erosion.Handler{}
	wearH := &wear.Handler{}
	corrosionH := &corrosion.Handler{}
	pressureH := &pressure.Handler{}
	failureH := &failure.Handler{}
	assessmentH := &assessment.Handler{}
	importH := &importer.Handler{}
	reportH := &report.Handler{}

	tools.HandleFunc("/erosion/gas/calc", erosionH.GasCalc).Methods("POST")
	tools.HandleFunc("/erosion/gas/sweep", erosionH.GasSweep).Methods("POST")
	tools.HandleFunc("/erosion/oil/calc", erosionH.OilCalc).Methods("POST")
	tools.HandleFunc("/erosion/oil/sweep", erosionH.OilSweep).Methods("POST")
	tools.HandleFunc("/wear/calc", wearH.Calc).Methods("POST")
	tools.HandleFunc("/wear/sweep", wearH.Sweep).Methods("POST")
	tools.HandleFunc("/corrosion/calc", corrosionH.Calc).Methods("POST")
	tools.HandleFunc("/corrosion/sweep", corrosionH.Sweep).Methods("POST")
	tools.HandleFunc("/pressure/external/nonplastic/calc", pressureH.NonPlasticCalc).Methods("POST")
	tools.HandleFunc("/pressure/external/nonplastic/sweep", pressureH.NonPlasticSweep).Methods("POST")
	tools.HandleFunc("/pressure/external/plastic/calc", pressureH.PlasticCalc).Methods("POST")
	tools.HandleFunc("/pressure/external/plastic/sweep", pressureH.PlasticSweep).Methods("POST")
	tools.HandleFunc("/pressure/internal/gas/calc", pressureH.GasCalc).Methods("POST")
	tools.HandleFunc("/pressure/internal/gas/sweep", pressureH.GasSweep).Methods("POST")
	tools.HandleFunc("/pressure/internal/oil/calc", pressureH.OilCalc).Methods("POST")
	tools.HandleFunc("/pressure/internal/oil/sweep", pressureH.OilSweep).Methods("POST")
	tools.HandleFunc("/failure/calc", failureH.Calc).Methods("POST")
	tools.HandleFunc("/assessment/calc", assessmentH.Calc).Methods("POST")
	tools.HandleFunc("/import/xlsx", importH.Import).Methods("POST")
	tools.HandleFunc("/report/pdf", reportH.Generate).Methods("POST")
}

func HandleList(router *mux.Router, cfg config.Config, users repo.Repository, log *zap.Logger) {
	authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey), Repo: users, Log: log}
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	router.Use(logging.Middleware(log))
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)
	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	tools := api.PathPrefix("/tools").Subrouter()
	tools.Use(authEnv.AuthMiddleware)
	ToolRoutes(tools)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config", zap.Error(err))
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("logger", zap.Error(err))
	}
	defer log.Sync()
	if !cfg.EnvFile {
		log.Info("no .env file, using process environment")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := repo.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}
	defer db.Close()

	router := mux.NewRouter()
	HandleList(router, cfg, repo.NewPostgresUserDB(db), log)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: CORS(router),
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("starting server", zap.String("addr", cfg.Addr), zap.Bool("tls", cfg.TLS()))
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	wg.Wait()
	log.Info("server stopped")
}
