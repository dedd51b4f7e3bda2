package main

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/apiforge/apiforge/internal/server/api"
	"github.com/apiforge/apiforge/internal/server/services"
	"github.com/apiforge/apiforge/internal/server/storage"
	"github.com/apiforge/apiforge/pkg/version"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var rootCmd = &cobra.Command{
	Use:   "apiforge-server",
	Short: "apiforge - dynamic CRUD API generator",
	Long:  "Server that lets platform users declare a schema and receive a generated, token-protected CRUD endpoint",
	// Default to serve command if no subcommand provided
	Run: func(cmd *cobra.Command, args []string) {
		runServe(cmd, args)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Run:   runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.GetVersion("apiforge-server"))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, adminCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	log.Printf("=== apiforge ===")
	log.Printf("%s", version.GetVersion("apiforge-server"))
	log.Println()

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		log.Fatal("SECRET_KEY environment variable not set")
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080/api/"
	}

	// Connect storage
	log.Println("=== Storage Setup ===")
	store, cleanup, err := openStore()
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer cleanup()

	// Initialize services
	emailService, err := services.NewEmailService()
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	schemaService := services.NewSchemaService(store.Schemas, emailService, secret, baseURL)
	recordService := services.NewRecordService(store.Schemas)
	accountService := services.NewAccountService(store.PlatformUsers, store.APIUsers, emailService, secret)
	otpService := services.NewOtpService(store.Otps, emailService)

	// Initialize handlers and router
	router := api.NewRouter(api.Handlers{
		Generate:      api.NewGenerateHandler(schemaService),
		Data:          api.NewDataHandler(schemaService, recordService),
		Verify:        api.NewVerifyHandler(accountService),
		PlatformUsers: api.NewPlatformUserHandler(accountService, otpService),
		APIUsers:      api.NewAPIUserHandler(accountService),
	})

	// Get server config
	host := os.Getenv("API_HOST")
	if host == "" {
		host = "0.0.0.0"
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// Find available port
	port = findAvailableAPIPort(port)
	addr := fmt.Sprintf("%s:%s", host, port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background cleanup of expired OTP codes
	go cleanupExpiredOtps(otpService)

	// Start server
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// openStore picks the backend: Firestore when Firebase credentials are
// configured, Postgres (with embedded migrations) otherwise.
func openStore() (*storage.Store, func(), error) {
	ctx := context.Background()

	if os.Getenv("FIREBASE_CREDENTIALS_PATH") != "" {
		log.Println("Connecting to Firestore...")
		client, err := storage.NewFirestoreClient(ctx)
		if err != nil {
			return nil, nil, err
		}
		log.Println("Firestore connected")
		return storage.NewFirestoreStore(client), func() { client.Close() }, nil
	}

	log.Println("Connecting to Postgres...")
	db, err := storage.NewPostgresDB()
	if err != nil {
		return nil, nil, err
	}
	log.Println("Database connected")

	log.Println("Running database migrations...")
	if err := runEmbeddedMigrations(db.DB.DB); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Migrations complete")

	return storage.NewPostgresStore(db), func() { db.Close() }, nil
}

func cleanupExpiredOtps(otpService *services.OtpService) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ctx := context.Background()
		if err := otpService.CleanupExpired(ctx); err != nil {
			log.Printf("Failed to cleanup expired OTP codes: %v", err)
		}
	}
}

func runEmbeddedMigrations(db *sql.DB) error {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	// Sort migrations by filename to ensure correct order
	var migrations []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".sql" {
			migrations = append(migrations, entry.Name())
		}
	}
	sort.Strings(migrations)

	for _, migration := range migrations {
		log.Printf("Applying migration: %s", migration)

		content, err := migrationsFS.ReadFile(filepath.Join("migrations", migration))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", migration, err)
		}

		// Migrations are idempotent CREATE IF NOT EXISTS statements
		if _, err := db.Exec(string(content)); err != nil {
			log.Printf("Warning: Migration %s: %v (may already exist)", migration, err)
		}
	}

	return nil
}

// isPortAvailable checks if a port is available for binding
func isPortAvailable(port string) bool {
	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return false // Port in use
	}
	ln.Close()
	return true // Port available
}

// findAvailableAPIPort finds an available port for the API server
func findAvailableAPIPort(preferredPort string) string {
	if isPortAvailable(preferredPort) {
		return preferredPort
	}

	log.Printf("Port %s in use, trying alternatives...", preferredPort)

	startPort := 8080
	if p, err := strconv.Atoi(preferredPort); err == nil {
		startPort = p
	}

	// Try next 20 ports
	for i := 1; i <= 20; i++ {
		portStr := strconv.Itoa(startPort + i)
		if isPortAvailable(portStr) {
			log.Printf("Found available port: %s", portStr)
			return portStr
		}
	}

	// No ports available, return preferred (will fail with clear error)
	log.Printf("No available ports found, will attempt %s", preferredPort)
	return preferredPort
}
