package generator

import (
	"path/filepath"
	"strings"

	"wp-starter/internal/database"
	"wp-starter/internal/prompt"
	"wp-starter/internal/theme"
	"wp-starter/internal/versions"
)

// Secret is one WordPress authentication key or salt.
type Secret struct {
	Name  string
	Value string
}

// RunContext accumulates the state of a single generator run. It is created by Run,
// handed to every step in turn and never shared between runs.
type RunContext struct {
	ID       string
	Root     string
	Versions versions.Resolved
	Answers  prompt.Answers

	ThemeName    string // as typed, used in theme headers
	ThemeSlug    string // directory and package name
	ThemeURL     string // starter theme as entered
	ThemeArchive string // archive URL derived from ThemeURL
	AuthorName   string
	AuthorURI    string

	SiteURL       string
	SiteTitle     string
	AdminUser     string
	AdminPassword string
	AdminEmail    string

	DB       database.Credentials
	DBPrefix string

	Secrets []Secret
}

// Path joins parts onto the destination root.
func (rc *RunContext) Path(parts ...string) string {
	return filepath.Join(append([]string{rc.Root}, parts...)...)
}

// Rel shortens path relative to the root for log lines.
func (rc *RunContext) Rel(path string) string {
	if r, err := filepath.Rel(rc.Root, path); err == nil && !strings.HasPrefix(r, "..") {
		return r
	}
	return path
}

// ThemeDir is where the starter theme is extracted.
func (rc *RunContext) ThemeDir() string {
	return rc.Path("app", "wp-content", "themes", rc.ThemeSlug)
}

// apply copies the collected answers into rc and computes the derived values.
func (rc *RunContext) apply(a prompt.Answers) {
	rc.Answers = a

	rc.ThemeName = a.Get(QThemeName)
	rc.ThemeSlug = theme.Slug(rc.ThemeName)
	rc.ThemeURL = a.Get(QThemeURL)
	rc.ThemeArchive = theme.ArchiveURL(rc.ThemeURL)
	rc.AuthorName = a.Get(QAuthorName)
	rc.AuthorURI = a.Get(QAuthorURI)

	rc.SiteURL = a.Get(QSiteURL)
	rc.SiteTitle = a.Get(QSiteTitle)
	rc.AdminUser = a.Get(QAdminUser)
	rc.AdminPassword = a.Get(QAdminPassword)
	rc.AdminEmail = a.Get(QAdminEmail)

	rc.DB = database.Credentials{
		Host:     a.Get(QDBHost),
		Name:     a.Get(QDBName),
		User:     a.Get(QDBUser),
		Password: a.Get(QDBPassword),
	}
	rc.DBPrefix = a.Get(QDBPrefix)
}
