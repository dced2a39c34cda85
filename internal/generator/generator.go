// Package generator scaffolds a WordPress project: it collects answers, resolves
// front-end library versions and drives the fixed step list through the pipeline runner.
package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"wp-starter/internal/config"
	"wp-starter/internal/database"
	"wp-starter/internal/logger"
	"wp-starter/internal/pipeline"
	"wp-starter/internal/prompt"
	"wp-starter/internal/shell"
	"wp-starter/internal/versions"
)

// Fetcher downloads an archive and extracts it into dest.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

// Provisioner creates the site database.
type Provisioner interface {
	Create(ctx context.Context, c database.Credentials) error
}

// Commander runs external tools.
type Commander interface {
	Run(ctx context.Context, c shell.Command) error
	Available(name string) bool
}

// VersionResolver picks the version of each upstream project.
type VersionResolver interface {
	ResolveAll(ctx context.Context, v config.Versions) versions.Resolved
}

// Prompter asks the questions of a session.
type Prompter interface {
	Collect(ctx context.Context, specs []prompt.Spec) (prompt.Answers, error)
}

// Generator holds the collaborators of a run.
type Generator struct {
	Settings  config.Settings
	Store     *config.Store
	Versions  VersionResolver
	Prompter  Prompter
	Fetcher   Fetcher
	DB        Provisioner
	Shell     Commander
	Log       *logger.Logger
	Observers []pipeline.Observer
}

// Report describes a finished or aborted run.
type Report struct {
	RunID    string
	Root     string
	Versions versions.Resolved
	State    pipeline.State
	Results  []pipeline.Result
}

// Run scaffolds a project into root. It returns a *pipeline.StepError when a fatal step
// fails; the report is nil only if the run never reached the pipeline.
func (g *Generator) Run(ctx context.Context, root string) (*Report, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}
	rc := &RunContext{ID: uuid.NewString(), Root: abs}
	logger.Debug("[DEBUG] Run %s into %s\n", rc.ID, rc.Root)

	stored, loadErr := g.Store.Load()
	if loadErr != nil {
		logger.Debug("[DEBUG] %v, using built-in defaults\n", loadErr)
	}

	g.Log.Info("looking up the latest WordPress, Bootstrap and Font Awesome releases")
	rc.Versions = g.Versions.ResolveAll(ctx, g.Settings.Versions)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.Log.Info("WordPress %s, Bootstrap %s, Font Awesome %s",
		rc.Versions.WordPress, rc.Versions.Bootstrap, rc.Versions.FontAwesome)
	g.Log.Writeln("")

	answers, err := g.Prompter.Collect(ctx, Questions(stored))
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}
	rc.apply(answers)
	g.Log.Writeln("")

	if errors.Is(loadErr, config.ErrNotFound) {
		if err := g.persistDefaults(rc); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(rc.Root, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", rc.Root, err)
	}

	runner := pipeline.New(g.Steps(), g.Observers...)
	err = runner.Run(ctx, rc)
	return &Report{
		RunID:    rc.ID,
		Root:     rc.Root,
		Versions: rc.Versions,
		State:    runner.State(),
		Results:  runner.Results(),
	}, err
}

// persistDefaults writes the author and theme answers as the stored defaults. A config
// written by a concurrent run in the meantime is left as is.
func (g *Generator) persistDefaults(rc *RunContext) error {
	err := g.Store.Save(config.StoredConfig{
		AuthorName: rc.AuthorName,
		AuthorURI:  rc.AuthorURI,
		Theme:      rc.ThemeURL,
	})
	if errors.Is(err, config.ErrExists) {
		logger.Debug("[DEBUG] %v, not overwriting\n", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("save defaults: %w", err)
	}
	g.Log.Create("%s", g.Store.Path())
	return nil
}
