package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"wp-starter/internal/archive"
	"wp-starter/internal/pipeline"
	"wp-starter/internal/shell"
)

const lessElementsRepo = "dmitryf/elements"

// sourceDirs are created before vendor files are moved into them.
var sourceDirs = []string{
	filepath.Join("src", "less", "includes"),
	filepath.Join("src", "js"),
	filepath.Join("src", "font"),
}

// vendorDirs hold the extracted front-end libraries until their files are moved out.
var vendorDirs = []string{
	filepath.Join("src", "bootstrap"),
	filepath.Join("src", "font-awesome"),
	filepath.Join("src", "elements"),
}

// vendorMoves lists glob patterns and the directory every match is moved into.
var vendorMoves = []struct {
	from string
	to   string
}{
	{filepath.Join("src", "bootstrap", "js"), "src"},
	{filepath.Join("src", "bootstrap", "less", "*"), filepath.Join("src", "less", "includes")},
	{filepath.Join("src", "font-awesome", "less", "*"), filepath.Join("src", "less", "includes")},
	{filepath.Join("src", "font-awesome", "font"), "src"},
	{filepath.Join("src", "elements", "*.less"), filepath.Join("src", "less", "includes")},
}

var headerLines = []struct {
	pattern *regexp.Regexp
	field   func(*RunContext) string
	label   string
}{
	{regexp.MustCompile(`(?m)^[^\r\n]*Theme Name:[^\r\n]*`), func(rc *RunContext) string { return rc.ThemeName }, "Theme Name"},
	{regexp.MustCompile(`(?m)^[^\r\n]*Author: [^\r\n]*`), func(rc *RunContext) string { return rc.AuthorName }, "Author"},
	{regexp.MustCompile(`(?m)^[^\r\n]*Author URI: [^\r\n]*`), func(rc *RunContext) string { return rc.AuthorURI }, "Author URI"},
}

// Steps returns the generator's fixed step list in execution order.
func (g *Generator) Steps() []pipeline.Step[*RunContext] {
	return []pipeline.Step[*RunContext]{
		{Name: "fetch-wordpress", Policy: pipeline.Fatal, Run: g.fetchWordPress},
		{Name: "remove-default-themes", Policy: pipeline.Fatal, Run: g.removeDefaultThemes},
		{Name: "fetch-starter-theme", Policy: pipeline.Fatal, Run: g.fetchStarterTheme},
		{Name: "fetch-bootstrap", Policy: pipeline.Fatal, Run: g.fetchBootstrap},
		{Name: "fetch-font-awesome", Policy: pipeline.Fatal, Run: g.fetchFontAwesome},
		{Name: "fetch-less-elements", Policy: pipeline.Fatal, Run: g.fetchLessElements},
		{Name: "create-source-dirs", Policy: pipeline.Fatal, Run: g.createSourceDirs},
		{Name: "move-vendor-files", Policy: pipeline.Fatal, Run: g.moveVendorFiles},
		{Name: "remove-sprites", Policy: pipeline.Fatal, Run: g.removeSprites},
		{Name: "clean-vendor-dirs", Policy: pipeline.Fatal, Run: g.cleanVendorDirs},
		{Name: "patch-bootstrap-less", Policy: pipeline.Fatal, Run: g.patchBootstrapLess},
		{Name: "render-style-less", Policy: pipeline.Fatal, Run: g.renderStyleLess},
		{Name: "stamp-theme-header", Policy: pipeline.Fatal, Run: g.stampThemeHeader},
		{Name: "generate-secrets", Policy: pipeline.Fatal, Run: g.generateSecrets},
		{Name: "render-wp-config", Policy: pipeline.Fatal, Run: g.renderWPConfig},
		{Name: "render-project-files", Policy: pipeline.Fatal, Run: g.renderProjectFiles},
		{Name: "create-database", Policy: pipeline.Continue, Run: g.createDatabase},
		{Name: "npm-install", Policy: pipeline.Continue, Run: g.npmInstall},
		{Name: "grunt-build", Policy: pipeline.Fatal, Run: g.gruntBuild},
		{Name: "wp-core-install", Policy: pipeline.Continue, Run: g.wpCoreInstall},
	}
}

// githubArchive returns the tarball URL of ref in the owner/name repository.
func (g *Generator) githubArchive(repo, ref string) string {
	base := strings.TrimRight(g.Settings.GitHub.ArchiveURL, "/")
	return fmt.Sprintf("%s/%s/archive/%s.tar.gz", base, repo, ref)
}

func (g *Generator) fetch(ctx context.Context, rc *RunContext, what, url, dest string) error {
	g.Log.Fetch("%s from %s", what, url)
	if err := g.Fetcher.Fetch(ctx, url, dest); err != nil {
		return fmt.Errorf("download %s: %w", what, err)
	}
	g.Log.Create("%s", rc.Rel(dest))
	return nil
}

func (g *Generator) fetchWordPress(ctx context.Context, rc *RunContext) error {
	url := g.githubArchive(g.Settings.Versions.WordPress.Repo, rc.Versions.WordPress)
	return g.fetch(ctx, rc, "WordPress "+rc.Versions.WordPress, url, rc.Path("app"))
}

func (g *Generator) removeDefaultThemes(ctx context.Context, rc *RunContext) error {
	dir := rc.Path("app", "wp-content", "themes")
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		g.Log.Skip("%s not found, no default themes to remove", rc.Rel(dir))
		return nil
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("remove theme %s: %w", e.Name(), err)
		}
		g.Log.Remove("%s", rc.Rel(path))
	}
	return nil
}

func (g *Generator) fetchStarterTheme(ctx context.Context, rc *RunContext) error {
	return g.fetch(ctx, rc, "starter theme", rc.ThemeArchive, rc.ThemeDir())
}

func (g *Generator) fetchBootstrap(ctx context.Context, rc *RunContext) error {
	url := g.githubArchive(g.Settings.Versions.Bootstrap.Repo, "v"+rc.Versions.Bootstrap)
	return g.fetch(ctx, rc, "Bootstrap "+rc.Versions.Bootstrap, url, rc.Path("src", "bootstrap"))
}

func (g *Generator) fetchFontAwesome(ctx context.Context, rc *RunContext) error {
	url := g.githubArchive(g.Settings.Versions.FontAwesome.Repo, "v"+rc.Versions.FontAwesome)
	return g.fetch(ctx, rc, "Font Awesome "+rc.Versions.FontAwesome, url, rc.Path("src", "font-awesome"))
}

func (g *Generator) fetchLessElements(ctx context.Context, rc *RunContext) error {
	return g.fetch(ctx, rc, "LESS Elements", g.githubArchive(lessElementsRepo, "master"), rc.Path("src", "elements"))
}

func (g *Generator) createSourceDirs(ctx context.Context, rc *RunContext) error {
	for _, d := range sourceDirs {
		if err := os.MkdirAll(rc.Path(d), 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", d, err)
		}
		g.Log.Create("%s", d)
	}
	return nil
}

func (g *Generator) moveVendorFiles(ctx context.Context, rc *RunContext) error {
	for _, m := range vendorMoves {
		matches, err := filepath.Glob(rc.Path(m.from))
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			g.Log.Skip("%s not found", m.from)
			continue
		}
		for _, src := range matches {
			dst := filepath.Join(rc.Path(m.to), filepath.Base(src))
			if err := archive.Move(src, dst); err != nil {
				return fmt.Errorf("move %s: %w", rc.Rel(src), err)
			}
		}
		g.Log.Update("%s -> %s", m.from, m.to)
	}
	return nil
}

func (g *Generator) removeSprites(ctx context.Context, rc *RunContext) error {
	path := rc.Path("src", "less", "includes", "sprites.less")
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		g.Log.Skip("%s not found", rc.Rel(path))
		return nil
	}
	if err != nil {
		return err
	}
	g.Log.Remove("%s", rc.Rel(path))
	return nil
}

func (g *Generator) cleanVendorDirs(ctx context.Context, rc *RunContext) error {
	for _, d := range vendorDirs {
		path := rc.Path(d)
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			g.Log.Skip("%s not found", d)
			continue
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("remove %s: %w", d, err)
		}
		g.Log.Remove("%s", d)
	}
	return nil
}

func (g *Generator) patchBootstrapLess(ctx context.Context, rc *RunContext) error {
	path := rc.Path("src", "less", "includes", "bootstrap.less")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read bootstrap.less: %w", err)
	}
	patched := strings.Replace(string(data), "sprites.less", "font-awesome.less", 1)
	if err := os.WriteFile(path, []byte(patched), 0o644); err != nil {
		return fmt.Errorf("write bootstrap.less: %w", err)
	}
	g.Log.Update("%s (sprites.less -> font-awesome.less)", rc.Rel(path))
	return nil
}

func (g *Generator) renderStyleLess(ctx context.Context, rc *RunContext) error {
	dest := rc.Path("src", "less", "style.less")
	if err := render("style.less.tmpl", dest, rc); err != nil {
		return err
	}
	g.Log.Create("%s", rc.Rel(dest))
	return nil
}

// stampThemeHeader rewrites the Theme Name, Author and Author URI header lines of every
// stylesheet in the starter theme.
func (g *Generator) stampThemeHeader(ctx context.Context, rc *RunContext) error {
	return filepath.WalkDir(rc.ThemeDir(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".css") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out := string(data)
		for _, h := range headerLines {
			out = h.pattern.ReplaceAllLiteralString(out, h.label+": "+h.field(rc))
		}
		if out == string(data) {
			return nil
		}
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return err
		}
		g.Log.Update("%s", rc.Rel(path))
		return nil
	})
}

func (g *Generator) generateSecrets(ctx context.Context, rc *RunContext) error {
	secrets, err := generateSecrets()
	if err != nil {
		return err
	}
	rc.Secrets = secrets
	g.Log.Info("generated %d keys and salts", len(secrets))
	return nil
}

func (g *Generator) renderWPConfig(ctx context.Context, rc *RunContext) error {
	dest := rc.Path("app", "wp-config.php")
	if err := render("wp-config.php.tmpl", dest, rc); err != nil {
		return err
	}
	g.Log.Create("%s", rc.Rel(dest))
	return nil
}

func (g *Generator) renderProjectFiles(ctx context.Context, rc *RunContext) error {
	for _, f := range projectFiles {
		if err := render(f.tmpl, rc.Path(f.dest), rc); err != nil {
			return err
		}
		g.Log.Create("%s", f.dest)
	}
	return nil
}

func (g *Generator) createDatabase(ctx context.Context, rc *RunContext) error {
	if err := g.DB.Create(ctx, rc.DB); err != nil {
		return err
	}
	g.Log.Create("database %s on %s", rc.DB.Name, rc.DB.Host)
	return nil
}

func (g *Generator) npmInstall(ctx context.Context, rc *RunContext) error {
	return g.Shell.Run(ctx, shell.Command{Name: g.Settings.Tools.NPM, Args: []string{"install"}, Dir: rc.Root})
}

func (g *Generator) gruntBuild(ctx context.Context, rc *RunContext) error {
	return g.Shell.Run(ctx, shell.Command{Name: g.Settings.Tools.Grunt, Args: []string{"build"}, Dir: rc.Root})
}

func (g *Generator) wpCoreInstall(ctx context.Context, rc *RunContext) error {
	tool := g.Settings.Tools.WP
	if !g.Shell.Available(tool) {
		g.Log.Skip("%s not installed, finish the WordPress install in the browser at %s", tool, rc.SiteURL)
		return nil
	}
	return g.Shell.Run(ctx, shell.Command{
		Name: tool,
		Args: []string{
			"core", "install",
			"--url=" + rc.SiteURL,
			"--title=" + rc.SiteTitle,
			"--admin_user=" + rc.AdminUser,
			"--admin_password=" + rc.AdminPassword,
			"--admin_email=" + rc.AdminEmail,
		},
		Dir: rc.Path("app"),
	})
}
