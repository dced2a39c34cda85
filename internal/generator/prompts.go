package generator

import (
	"wp-starter/internal/config"
	"wp-starter/internal/prompt"
	"wp-starter/internal/theme"
)

// Answer keys.
const (
	QThemeName     = "themeName"
	QThemeURL      = "themeUrl"
	QAuthorName    = "authorName"
	QAuthorURI     = "authorURI"
	QSiteURL       = "siteURL"
	QSiteTitle     = "siteTitle"
	QAdminUser     = "adminUser"
	QAdminPassword = "adminPassword"
	QAdminEmail    = "adminEmail"
	QDBHost        = "dbHost"
	QDBName        = "dbName"
	QDBUser        = "dbUser"
	QDBPassword    = "dbPassword"
	QDBPrefix      = "dbPrefix"
)

// DefaultThemeName is offered when the user has no theme name in mind.
const DefaultThemeName = "mytheme"

// Questions returns the prompt session, in order, seeded from the stored defaults.
func Questions(stored config.StoredConfig) []prompt.Spec {
	d := stored.WithDefaults()
	slug := func(a prompt.Answers) string { return theme.Slug(a.Get(QThemeName)) }

	return []prompt.Spec{
		{Name: QThemeName, Message: "Name of the theme you want to use:", Default: DefaultThemeName},
		{Name: QThemeURL, Message: "Starter theme (GitHub repository or archive URL):", Default: d.Theme},
		{Name: QAuthorName, Message: "Author name:", Default: d.AuthorName},
		{Name: QAuthorURI, Message: "Author URI:", Default: d.AuthorURI},
		{Name: QSiteURL, Message: "Site URL:", Derive: func(a prompt.Answers) string {
			return "http://localhost/" + slug(a)
		}},
		{Name: QSiteTitle, Message: "Site title:", Derive: func(a prompt.Answers) string {
			return theme.Title(a.Get(QThemeName))
		}},
		{Name: QAdminUser, Message: "Admin user:", Default: "admin"},
		{Name: QAdminPassword, Message: "Admin password:", Default: "admin", Secret: true},
		{Name: QAdminEmail, Message: "Admin email:", Default: "admin@example.com"},
		{Name: QDBHost, Message: "Database host:", Default: "localhost"},
		{Name: QDBName, Message: "Database name:", Derive: slug},
		{Name: QDBUser, Message: "Database user:", Default: "root"},
		{Name: QDBPassword, Message: "Database password:", Secret: true},
		{Name: QDBPrefix, Message: "Table prefix:", Default: "wp_"},
	}
}
