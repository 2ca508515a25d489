package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"mana-vault/core/loader"
	"mana-vault/core/logger"
	"mana-vault/core/middleware/auth"
	"mana-vault/core/middleware/rayid"
	"mana-vault/feature/catalog"
	"mana-vault/feature/collection"
	"mana-vault/feature/index"
	"mana-vault/feature/integrity"
	"mana-vault/feature/search"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "mana-vault/docs/swagger"
)

// @title mana-vault API
// @version 1.0
// @description Search, card detail and collection ownership over a canonical Magic: The Gathering card index.
// @host localhost:8080
// @BasePath /

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the HTTP server, loads every feature and runs scheduled rebuilds when
index.schedule is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context(), bootstrapOptions{Recover: true})
		if err != nil {
			return err
		}
		defer a.Close()
		logg := a.logger
		zap.ReplaceGlobals(logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager(logg)
		mgr.Register(search.NewFeature(a.searchSvc))
		mgr.Register(catalog.NewFeature(a.catalog))
		mgr.Register(index.NewFeature(a.indexSvc))
		mgr.Register(collection.NewFeature(a.ledger))
		mgr.Register(integrity.NewFeature(a.integrity))

		// RayID must be first to trace everything.
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger stays public.
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Use(auth.New(auth.Config{ApiKey: a.cfg.Server.ApiKey}))
		if !a.cfg.Server.AuthEnabled() {
			logg.Warn("API key is empty, requests are not authenticated")
		}

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		if a.cfg.Index.Schedule != "" {
			sched, err := index.NewScheduler(a.cfg.Index.Schedule, a.indexSvc.Trigger, logg.Named("schedule"))
			if err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()
			logg.Info("Scheduled rebuilds enabled", zap.String("schedule", a.cfg.Index.Schedule))
		}

		if err := a.engine.Ready(cmd.Context()); err != nil {
			logg.Warn("Index store is empty, searches return 503 until a rebuild completes")
		}

		go func() {
			logg.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			if err := app.Listen(a.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
