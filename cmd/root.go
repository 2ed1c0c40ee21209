package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"relief/internal/config"
	"relief/internal/core/container"
	"relief/internal/core/logger"
	"relief/internal/core/routes"
	"relief/internal/database"
	"relief/internal/database/migration"
	"relief/internal/repository"
	"relief/internal/users"
)

const shutdownTimeout = 10 * time.Second

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.NewLogger(cfg.Log.Level, cfg.Log.Development), nil
}

func migrationSource(dir string) string {
	return fmt.Sprintf("file://%s", dir)
}

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run migrations manually.",
	Long:  `Applies every pending migration from --dir (defaults to MIGRATIONS_DIR).`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		migrationDir, _ := cmd.Flags().GetString("dir")
		if migrationDir == "" {
			migrationDir = cfg.Database.MigrationsDir
		}

		if err := migration.Migrate(cfg.Database.URL, migrationSource(migrationDir), true, log); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		return nil
	},
}

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the relief HTTP API.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		return serve(cmd.Context(), cfg, log)
	},
}

var CreateUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create an operator account.",
	Long:  `Creates a user with a bcrypt-hashed password, e.g. the first Admin of a new deployment.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		var input users.CreateUserInput
		input.Username, _ = cmd.Flags().GetString("username")
		input.Password, _ = cmd.Flags().GetString("password")
		input.FullName, _ = cmd.Flags().GetString("full-name")
		input.Role, _ = cmd.Flags().GetString("role")
		input.VolunteerID, _ = cmd.Flags().GetInt("volunteer-id")

		db, err := database.NewPostgresConnection(cmd.Context(), cfg.Database.URL, database.PoolOptions{MaxOpenConns: 1})
		if err != nil {
			return err
		}
		defer db.Close()

		service := users.NewUserService(users.NewRepository(repository.NewRepository(db)), log)
		user, err := service.CreateUser(cmd.Context(), input)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s, %s)\n", user.ID, user.Username, user.Role)
		return nil
	},
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.Database.MigrateOnStart {
		if err := migration.Migrate(cfg.Database.URL, migrationSource(cfg.Database.MigrationsDir), false, log); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	db, err := database.NewPostgresConnection(ctx, cfg.Database.URL, database.PoolOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	log.Info("Connected to the database")

	app := container.NewAppContainer(db, cfg, log)
	go app.RequestLimiter.Run(ctx)

	server := &http.Server{
		Addr:              cfg.Server.Host,
		Handler:           routes.NewRouter(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("addr", cfg.Server.Host), zap.String("version", cfg.Server.Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func Execute(ctx context.Context) {
	rootCmd := &cobra.Command{
		Use:   "relief",
		Short: "Disaster relief request and distribution service",
	}
	MigrateCmd.Flags().String("dir", "", "Directory containing the migration files")
	CreateUserCmd.Flags().String("username", "", "Login name")
	CreateUserCmd.Flags().String("password", "", "Password, at least 6 characters")
	CreateUserCmd.Flags().String("full-name", "", "Full name; links to a volunteer of the same name when --volunteer-id is unset")
	CreateUserCmd.Flags().String("role", "Volunteer", "Admin, Camp Manager, Volunteer or Donor")
	CreateUserCmd.Flags().Int("volunteer-id", 0, "Volunteer this account belongs to")
	_ = CreateUserCmd.MarkFlagRequired("username")
	_ = CreateUserCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(MigrateCmd, ServeCmd, CreateUserCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
