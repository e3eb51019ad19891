// This is the main entry point of the task manager API.
// It loads configuration, opens the store, wires services and handlers together,
// and runs the HTTP server until it receives SIGINT or SIGTERM.
//
// @title Task Manager API
// @version 1.0
// @description Personal task lists with token-based sessions.
// @contact.name API Support
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/user/taskmanager-go/auth"
	"github.com/user/taskmanager-go/background"
	"github.com/user/taskmanager-go/config"
	"github.com/user/taskmanager-go/db"
	"github.com/user/taskmanager-go/logging"
	"github.com/user/taskmanager-go/server"
	"github.com/user/taskmanager-go/store"
	"github.com/user/taskmanager-go/store/memory"
	"github.com/user/taskmanager-go/store/postgres"
	"github.com/user/taskmanager-go/tasks"
	"github.com/user/taskmanager-go/users"
)

func main() {
	app := &cli.App{
		Name:  "taskmanager",
		Usage: "task management REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file to load before reading the environment",
				Value: ".env",
			},
		},
		Before: func(c *cli.Context) error {
			// A missing .env is normal outside development.
			if err := godotenv.Load(c.String("env-file")); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("loading %s: %w", c.String("env-file"), err)
			}
			return nil
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server (default)",
				Action: serve,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "migrate",
						Usage: "apply pending migrations before serving (postgres only)",
					},
				},
			},
			{
				Name:   "migrate",
				Usage:  "apply pending database migrations and exit",
				Action: migrateCmd,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func migrateCmd(c *cli.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Database.Driver != config.StoreDriverPostgres {
		return fmt.Errorf("migrate needs STORE_DRIVER=%s, got %q", config.StoreDriverPostgres, cfg.Database.Driver)
	}
	if err := db.RunMigrations(cfg.Database.URL); err != nil {
		return err
	}
	log.Println("migrations applied")
	return nil
}

func serve(c *cli.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(os.Stdout, cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if c.Bool("migrate") && cfg.Database.Driver == config.StoreDriverPostgres {
		if err := db.RunMigrations(cfg.Database.URL); err != nil {
			return err
		}
		logger.Info(ctx, "migrations applied")
	}

	st, err := openStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer st.Close()
	logger.Info(ctx, "store ready", "driver", cfg.Database.Driver)

	// Notification sink: emails are queued here and delivered off the request path.
	mailer := background.NewMailer(background.NewSender(cfg.Mail, logger), cfg.Mail, logger.With("component", "mailer"))
	mailer.Start()

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	authService := auth.NewService(st, hasher, tokens, mailer, logger)
	userService := users.NewUserService(st, hasher, mailer, logger)
	taskService := tasks.NewTaskService(st, logger)

	router := server.NewRouter(server.Dependencies{
		Config: cfg.Server,
		Store:  st,
		Tokens: tokens,
		Log:    logger,
		Auth:   auth.NewHandlers(authService),
		Users:  users.NewUserHandlers(userService),
		Tasks:  tasks.NewTaskHandlers(taskService),
	})

	srv := server.New(":"+cfg.Server.Port, router, logger)
	runErr := srv.Run(ctx)

	// Let queued emails go out before the store and process go away.
	drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := mailer.Stop(drainCtx); err != nil {
		logger.Warn(drainCtx, "mailer did not drain", "error", err)
	}

	return runErr
}

// openStore returns the configured store implementation.
func openStore(ctx context.Context, cfg *config.DatabaseConfig) (store.Store, error) {
	switch cfg.Driver {
	case config.StoreDriverMemory:
		return memory.New(), nil
	case config.StoreDriverPostgres:
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return postgres.New(pool), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
