package config

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/neziw/releasecheck/pkg/domain/model"
	"github.com/neziw/releasecheck/pkg/domain/types"
	"github.com/neziw/releasecheck/pkg/domain/version"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Watch holds the path of the TOML file listing watched repositories
type Watch struct {
	File string
}

type watchFile struct {
	Repository []model.WatchTarget `toml:"repository"`
}

// Flags returns CLI flags for watch configuration
func (c *Watch) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "watch-file",
			Usage:       "TOML file listing repositories and their deployed versions",
			Destination: &c.File,
			Sources:     cli.EnvVars("RELEASECHECK_WATCH_FILE"),
		},
	}
}

// Load reads the watch file. It returns nil targets when no file is configured.
func (c *Watch) Load() ([]model.WatchTarget, error) {
	if c.File == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(c.File)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read watch file",
			goerr.T(types.ErrTagConfig),
			goerr.V("path", c.File))
	}

	targets, err := ParseWatch(raw)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid watch file", goerr.V("path", c.File))
	}
	return targets, nil
}

// ParseWatch decodes and validates watch targets from TOML
func ParseWatch(raw []byte) ([]model.WatchTarget, error) {
	var file watchFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to decode watch file", goerr.T(types.ErrTagConfig))
	}

	seen := make(map[string]struct{}, len(file.Repository))
	for i := range file.Repository {
		t := &file.Repository[i]
		t.Owner = strings.TrimSpace(t.Owner)
		t.Name = strings.TrimSpace(t.Name)
		t.Version = strings.TrimSpace(t.Version)
		t.Tag = strings.TrimSpace(t.Tag)

		if t.Owner == "" || t.Name == "" || t.Version == "" {
			return nil, goerr.New("owner, name and version are required",
				goerr.T(types.ErrTagConfig),
				goerr.V("index", i),
				goerr.V("target", *t))
		}
		if _, err := version.Parse(t.Version); err != nil {
			return nil, goerr.Wrap(err, "invalid version in watch file",
				goerr.T(types.ErrTagConfig),
				goerr.V("repository", t.FullName()))
		}

		key := strings.ToLower(t.FullName())
		if _, ok := seen[key]; ok {
			return nil, goerr.New("repository listed more than once",
				goerr.T(types.ErrTagConfig),
				goerr.V("repository", t.FullName()))
		}
		seen[key] = struct{}{}
	}

	return file.Repository, nil
}
