package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/neziw/releasecheck/pkg/cli/config"
	"github.com/neziw/releasecheck/pkg/domain/interfaces"
	"github.com/neziw/releasecheck/pkg/domain/model"
	"github.com/neziw/releasecheck/pkg/domain/types"
	"github.com/neziw/releasecheck/pkg/usecase"
	"github.com/urfave/cli/v3"
)

var (
	upToDateC = color.New(color.FgGreen)
	outdatedC = color.New(color.FgYellow, color.Bold)
	failureC  = color.New(color.FgRed)
	faintC    = color.New(color.Faint)
)

type checkTarget struct {
	owner   string
	repo    string
	version string
	tag     string
}

func cmdCheck() *cli.Command {
	var (
		githubCfg config.GitHub
		watchCfg  config.Watch
		target    checkTarget
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "owner",
			Usage:       "Repository owner",
			Destination: &target.owner,
		},
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Repository name",
			Destination: &target.repo,
		},
		&cli.StringFlag{
			Name:        "current-version",
			Usage:       "Currently deployed version, e.g. 1.0.2",
			Destination: &target.version,
		},
		&cli.StringFlag{
			Name:        "current-tag",
			Usage:       "Release tag of the deployed version (defaults to --current-version)",
			Destination: &target.tag,
		},
	}
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, watchCfg.Flags()...)

	return &cli.Command{
		Name:    "check",
		Aliases: []string{"c"},
		Usage:   "Check repositories for newer releases",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)
			logger.Debug("check config", slog.Any("github", githubCfg))

			targets, err := resolveTargets(target, &watchCfg)
			if err != nil {
				return err
			}

			template := usecase.NewBuilder().
				WithToken(githubCfg.Token).
				WithBaseURL(githubCfg.APIURL)

			return runCheck(ctx, c.Root().Writer, usecase.NewCheck(template), targets)
		},
	}
}

// resolveTargets returns the single target given by flags, or the targets of the watch file
func resolveTargets(flagTarget checkTarget, watchCfg *config.Watch) ([]model.WatchTarget, error) {
	if flagTarget.owner != "" || flagTarget.repo != "" {
		if watchCfg.File != "" {
			return nil, goerr.New("--owner/--repo and --watch-file are mutually exclusive",
				goerr.T(types.ErrTagConfig))
		}
		if flagTarget.owner == "" || flagTarget.repo == "" || flagTarget.version == "" {
			return nil, goerr.New("--owner, --repo and --current-version must be set together",
				goerr.T(types.ErrTagConfig))
		}
		return []model.WatchTarget{{
			Owner:   flagTarget.owner,
			Name:    flagTarget.repo,
			Version: flagTarget.version,
			Tag:     flagTarget.tag,
		}}, nil
	}

	targets, err := watchCfg.Load()
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, goerr.New("no repository to check, set --owner/--repo/--current-version or --watch-file",
			goerr.T(types.ErrTagConfig))
	}
	return targets, nil
}

// runCheck checks every target and prints one report line each. All targets are checked even if some fail.
func runCheck(ctx context.Context, w io.Writer, uc interfaces.CheckUseCase, targets []model.WatchTarget) error {
	if w == nil {
		w = os.Stdout
	}
	logger := ctxlog.From(ctx)

	var failed int
	for _, target := range targets {
		result, err := uc.Check(ctx, target.Owner, target.Name, target.Version, target.CurrentTag())
		if err != nil {
			failed++
			logger.Error("check failed",
				slog.String("repository", target.FullName()),
				slog.Any("error", err))
			_, _ = failureC.Fprintf(w, "✗ %s: %v\n", target.FullName(), err)
			continue
		}
		printResult(w, result)
	}

	if failed > 0 {
		return goerr.New("some repositories could not be checked",
			goerr.V("failed", failed),
			goerr.V("total", len(targets)))
	}
	return nil
}

func printResult(w io.Writer, result *model.CheckResult) {
	if !result.NewerAvailable {
		_, _ = upToDateC.Fprintf(w, "✓ %s %s is up to date\n", result.FullName(), result.CurrentVersion)
		return
	}

	_, _ = outdatedC.Fprintf(w, "↑ %s %s -> %s", result.FullName(), result.CurrentVersion, result.LatestTag)
	if result.ReleasesBehind >= 0 {
		_, _ = fmt.Fprintf(w, " (%d releases behind)", result.ReleasesBehind)
	} else {
		_, _ = fmt.Fprintf(w, " (tag %s not found in releases)", result.CurrentTag)
	}
	_, _ = fmt.Fprintln(w)
	if result.LatestURL != "" {
		_, _ = faintC.Fprintf(w, "  %s\n", result.LatestURL)
	}
}
