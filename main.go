package main

import (
	auth "VesselForge/internal/auth"
	api579 "VesselForge/internal/calc/api579"
	asmediv1 "VesselForge/internal/calc/asmediv1"
	asmediv2 "VesselForge/internal/calc/asmediv2"
	en13445 "VesselForge/internal/calc/en13445"
	factory "VesselForge/internal/calc/factory"
	materialcalc "VesselForge/internal/calc/material"
	pipestress "VesselForge/internal/calc/pipestress"
	autodesign "VesselForge/internal/calc/premium/autodesign"
	batch "VesselForge/internal/calc/premium/batch"
	importer "VesselForge/internal/calc/premium/importer"
	recommend "VesselForge/internal/calc/premium/recommend"
	report "VesselForge/internal/calc/report"
	safetycalc "VesselForge/internal/calc/safety"
	vesselcalc "VesselForge/internal/calc/vessel"
	history "VesselForge/internal/history"
	repo "VesselForge/internal/repo"
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

var wg sync.WaitGroup

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

func HandleList(mux *mux.Router, db *sql.DB) {
	store := repo.NewPostgresDB(db)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: store}
	historyH := &history.Handler{Repo: store}

	limiter := auth.NewIPRateLimiter(1, 3)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	div1H := &asmediv1.Handler{}
	div2H := &asmediv2.Handler{}
	enH := &en13445.Handler{}
	vesselH := &vesselcalc.Handler{}
	pipeH := &pipestress.Handler{}
	materialH := &materialcalc.Handler{}
	safetyH := &safetycalc.Handler{}
	api579H := &api579.Handler{}
	dispatchH := &factory.Handler{}
	reportH := &report.Handler{}
	batchH := &batch.Handler{}
	importerH := &importer.Handler{}
	autodesignH := &autodesign.Handler{}
	recommendH := &recommend.Handler{}

	secureApi.HandleFunc("/tools/asme-div1/calc", div1H.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/asme-div2/calc", div2H.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/en13445/calc", enH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/vessel/calc", vesselH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/pipe/calc", pipeH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/material/calc", materialH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/safety/calc", safetyH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/api579/calc", api579H.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/calc", dispatchH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")

	secureApi.HandleFunc("/tools/batch/calc", batchH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/import/shells", importerH.Shells).Methods("POST")
	secureApi.HandleFunc("/tools/autodesign/shell", autodesignH.Shell).Methods("POST")
	secureApi.HandleFunc("/tools/recommend/pad", recommendH.Pad).Methods("POST")

	secureApi.HandleFunc("/calculations", historyH.Run).Methods("POST")
	secureApi.HandleFunc("/calculations", historyH.List).Methods("GET")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db := auth.InitDB()
	defer db.Close()
	mux := mux.NewRouter()
	HandleList(mux, db)
	handler := CORS(mux)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":443"
	}
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	log.Println("Starting server on", addr)
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		cert, key := os.Getenv("TLS_CERT"), os.Getenv("TLS_KEY")
		if cert != "" && key != "" {
			err = server.ListenAndServeTLS(cert, key)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
