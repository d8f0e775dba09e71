package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/bloom/internal/api"
	"github.com/terraincognita07/bloom/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(opts, func(rt *appRuntime) error {
				logOutput, closeLog := logging.Setup(rt.config.Log)
				defer closeLog()

				handler, err := api.NewHandler(rt.database, rt.config.Location)
				if err != nil {
					return fmt.Errorf("handler init failed: %w", err)
				}
				app := newServer(handler, logOutput)

				ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				log.Printf("Bloom listening on http://%s (db: %s, tz: %s)", rt.config.ListenAddr(), rt.config.DBPath, rt.config.Location.String())
				return runServer(ctx, app, rt.config.ListenAddr())
			})
		},
	}
}

func newServer(handler *api.Handler, logOutput io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Bloom",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		Output: logOutput,
	}))
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)
	return app
}

// runServer blocks until the listener fails or ctx is cancelled, then
// drains in-flight requests for up to shutdownTimeout.
func runServer(ctx context.Context, app *fiber.App, addr string) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
