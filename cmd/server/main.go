package main

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"brandpulse/internal/api"
	"brandpulse/internal/db"
	"brandpulse/internal/middleware"
	"brandpulse/internal/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	addr := utils.SafeEnv("BRANDPULSE_ADDR", ":8080")
	commit := os.Getenv("BRANDPULSE_COMMIT")
	buildTime := os.Getenv("BRANDPULSE_BUILD_TIME")

	store, err := openStore()
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	mux := http.NewServeMux()
	api.NewRouter(store).Register(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"name":       "BrandPulse API",
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	// Serve the dashboard bundle when packaged as a fullstack image.
	if staticDir := os.Getenv("BRANDPULSE_STATIC_DIR"); staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	handler := middleware.CORS(middleware.NoStore(middleware.WithAuth(mux)))

	log.Printf("BrandPulse server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// openStore picks SQLite when a path is configured, otherwise the
// process-local memory store.
func openStore() (api.Store, error) {
	sqlitePath := os.Getenv("BRANDPULSE_SQLITE_PATH")
	if sqlitePath == "" {
		log.Printf("no BRANDPULSE_SQLITE_PATH set, using in-memory store")
		return api.NewMemoryStore(), nil
	}
	if err := os.MkdirAll(filepath.Dir(sqlitePath), 0o755); err != nil {
		return nil, err
	}
	dsn := "file:" + filepath.ToSlash(sqlitePath) + "?cache=shared&_busy_timeout=5000"
	sqliteDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	store, err := db.NewStore(sqliteDB)
	if err != nil {
		return nil, err
	}
	log.Printf("using sqlite store at %s", sqlitePath)
	return store, nil
}
