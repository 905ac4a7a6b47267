package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Rakhulsr/go-cosmetics/app/configs"
	"github.com/Rakhulsr/go-cosmetics/app/db/seeders"
	"github.com/Rakhulsr/go-cosmetics/app/logger"
	"github.com/Rakhulsr/go-cosmetics/app/models/migrations"
	"github.com/Rakhulsr/go-cosmetics/app/services"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 15 * time.Second

// RunCli runs the command named in args. Without a subcommand the HTTP server
// is started.
func RunCli(env configs.ENV, args []string) {
	cmd := &cli.Command{
		Name:  "go-cosmetics",
		Usage: "Cosmetics store API",
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, env)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the HTTP and websocket server",
				Action: func(ctx context.Context, c *cli.Command) error {
					return serve(ctx, env)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("✅ Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Create the admin user and starter categories",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "demo", Value: 0, Usage: "number of demo products to add"},
					&cli.IntFlag{Name: "rand-seed", Value: 1, Usage: "seed for demo product generation"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					logger.Init(env.AppEnv)
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					opts := seeders.Options{
						AdminEmail:    env.AdminEmail,
						AdminPassword: env.AdminPassword,
						AdminName:     env.AdminName,
						DemoProducts:  int(c.Int("demo")),
						RandSeed:      int64(c.Int("rand-seed")),
					}
					if err := seeders.DBSeed(ctx, db, opts); err != nil {
						return err
					}
					log.Println("✅ Seeding complete")
					return nil
				},
			},
			{
				Name:  "purge-temporary-orders",
				Usage: "Delete abandoned online checkouts",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "older-than", Value: 24 * time.Hour, Usage: "minimum age of a temporary order"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					logger.Init(env.AppEnv)
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					app := NewApp(db, Options{JWTSecret: env.JWTSecret})
					n, err := app.Orders.PurgeTemporary(ctx, c.Duration("older-than"))
					if err != nil {
						return err
					}
					log.Printf("✅ Purged %d temporary orders", n)
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate a new JWT signing secret for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateAndPrintKeys(); err != nil {
						return err
					}
					log.Println("✅ Key generation complete. Please copy the keys to your .env file.")
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), args); err != nil {
		log.Fatal(err)
	}
}

func serve(ctx context.Context, env configs.ENV) error {
	logger.Init(env.AppEnv)
	if env.JWTSecret == "" {
		return errors.New("JWT_SECRET is empty, run generate-keys and update .env")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := configs.OpenConnection(env)
	if err != nil {
		return fmt.Errorf("DB connection failed: %w", err)
	}

	otpStore, err := newOTPStore(ctx, env)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(env.UploadDir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload dir: %w", err)
	}

	mailer := services.NewMailer(services.Config{
		Host:     env.EmailHost,
		Port:     env.EmailPort,
		Username: env.EmailUsername,
		Password: env.EmailPassword,
		From:     env.EmailFrom,
	})
	gateway := services.NewRazorpayGateway(configs.NewRazorpayClient(env), env.RazorpayKeyID, env.RazorpayKeySecret)

	app := NewApp(db, Options{
		JWTSecret:   env.JWTSecret,
		Mailer:      mailer,
		Gateway:     gateway,
		OTPStore:    otpStore,
		UploadDir:   env.UploadDir,
		CORSOrigins: splitOrigins(env.CORSOrigin),
	})
	app.Start(ctx)

	server := &http.Server{
		Addr:              env.Port,
		Handler:           app.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serve: server starting", "addr", server.Addr, "env", env.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("serve: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func newOTPStore(ctx context.Context, env configs.ENV) (services.OTPStore, error) {
	switch env.OTPStore {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     env.RedisAddr,
			Password: env.RedisPassword,
			DB:       env.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to reach redis at %s: %w", env.RedisAddr, err)
		}
		logger.Info("newOTPStore: using redis", "addr", env.RedisAddr)
		return services.NewRedisOTPStore(rdb), nil
	case "", "memory":
		store := services.NewMemoryOTPStore()
		go store.RunSweeper(ctx, time.Minute)
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported OTP_STORE %q", env.OTPStore)
	}
}

func splitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
