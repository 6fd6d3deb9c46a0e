package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/neziw/releasecheck/pkg/cli/config"
	controller "github.com/neziw/releasecheck/pkg/controller/http"
	"github.com/neziw/releasecheck/pkg/domain/interfaces"
	"github.com/neziw/releasecheck/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		githubCfg config.GitHub
		watchCfg  config.Watch
		slackCfg  config.Slack
	)

	flags := append(serverCfg.Flags(), githubCfg.Flags()...)
	flags = append(flags, githubCfg.WebhookFlags()...)
	flags = append(flags, watchCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting releasecheck server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("github", githubCfg),
				slog.Any("slack", slackCfg),
			)

			targets, err := watchCfg.Load()
			if err != nil {
				return err
			}

			template := usecase.NewBuilder().
				WithToken(githubCfg.Token).
				WithBaseURL(githubCfg.APIURL)

			// Create use cases
			checkUC := usecase.NewCheck(template)

			var webhookUC interfaces.WebhookUseCase
			if githubCfg.WebhookSecret != "" {
				notifier := slackCfg.Configure()
				if notifier == nil {
					logger.Warn("Slack webhook URL is not set, updates will only be logged")
				}
				webhookUC = usecase.NewWebhook(targets, template, notifier)
				logger.Info("GitHub webhook enabled", slog.Int("watched", len(targets)))
			} else if len(targets) > 0 {
				logger.Warn("Watch file is ignored because webhook secret is not set",
					slog.String("path", watchCfg.File))
			}

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				checkUC,
				webhookUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(githubCfg.WebhookSecret),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
