package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"SocialAutoPoster/config"
	"SocialAutoPoster/database"
	"SocialAutoPoster/handlers"
	"SocialAutoPoster/middleware"
	"SocialAutoPoster/models"
	"SocialAutoPoster/services"
	"SocialAutoPoster/utils"
)

var rootCmd = &cobra.Command{
	Use:   "socialposter",
	Short: "Automated social media poster for Facebook and Twitter/X",
	Long: `socialposter publishes pre-authored content rotations to Facebook and
Twitter/X. Each posting category (daily, friday, ramadan) keeps its own
rotation state in a YAML file so runs pick up where the last one left off.

Normally invoked as a one-shot from GitHub Actions cron workflows; it can
also run its own scheduler or serve a local status API.`,
	SilenceUsage: true,
}

var postTypeFlag string

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Publish the next due post for a category and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		postType, err := models.ParsePostType(postTypeFlag)
		if err != nil {
			return err
		}

		cfg, db := bootstrap()
		defer closeDB(db)

		poster := services.NewPosterService(cfg, db)
		_, err = poster.Run(cmd.Context(), postType)
		return err
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the built-in cron scheduler until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db := bootstrap()
		defer closeDB(db)

		poster := services.NewPosterService(cfg, db)
		scheduler := services.NewScheduler(cfg, poster)
		if err := scheduler.Start(); err != nil {
			return err
		}
		defer scheduler.Stop()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		utils.Infof("Shutting down")
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the status/admin HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db := bootstrap()
		defer closeDB(db)

		poster := services.NewPosterService(cfg, db)
		authService := services.NewAuthService(cfg)
		handler := handlers.NewHandler(cfg, poster, authService, db)

		r := setupRoutes(handler, authService)

		utils.Infof("Status server starting on port %s", cfg.Server.Port)
		return http.ListenAndServe(":"+cfg.Server.Port, r)
	},
}

func setupRoutes(h *handlers.Handler, authService *services.AuthService) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/api/auth/login", h.Login).Methods("POST")

	// Protected routes
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(middleware.AuthMiddleware(authService))

	protected.HandleFunc("/state", h.GetState).Methods("GET")
	protected.HandleFunc("/logs", h.GetLogs).Methods("GET")
	protected.HandleFunc("/history", h.GetHistory).Methods("GET")

	// Manual triggers are rate-limited: one sustained trigger per minute
	// with a small burst, so a stuck client can't drain the rotation.
	trigger := protected.PathPrefix("/post").Subrouter()
	trigger.Use(middleware.NewRateLimiter(1.0/60, 3).Middleware())
	trigger.HandleFunc("", h.TriggerPost).Methods("POST")

	return r
}

// bootstrap loads config, wires the logger to the run-log file, and opens
// the optional history database. History failures are not fatal: the bot
// still posts, it just loses the audit trail for this run.
func bootstrap() (*config.Config, *database.Database) {
	cfg := config.Load()

	utils.SetLogLevel(cfg.LogLevel)
	if err := utils.SetLogFile(cfg.Paths.LogFile); err != nil {
		utils.Errorf("Run log unavailable: %v", err)
	}

	var db *database.Database
	if cfg.Database.URL != "" {
		var err error
		db, err = database.NewDatabase(cfg.Database.URL)
		if err != nil {
			utils.Errorf("Run history disabled: %v", err)
			db = nil
		}
	}

	return cfg, db
}

func closeDB(db *database.Database) {
	if db != nil {
		db.Close()
	}
}

func init() {
	// .env is a local-dev convenience; CI injects real secrets as env.
	_ = godotenv.Load()

	postCmd.Flags().StringVar(&postTypeFlag, "type", "", "post category (daily, friday or ramadan)")
	postCmd.MarkFlagRequired("type")

	rootCmd.AddCommand(postCmd, runCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
