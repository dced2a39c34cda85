package generator

import (
	"path/filepath"
	"strings"
	"testing"

	"wp-starter/internal/config"
	"wp-starter/internal/database"
	"wp-starter/internal/prompt"
)

func TestGenerateSecrets(t *testing.T) {
	secrets, err := generateSecrets()
	if err != nil {
		t.Fatal(err)
	}
	if len(secrets) != len(secretNames) {
		t.Fatalf("got %d secrets, want %d", len(secrets), len(secretNames))
	}
	seen := map[string]bool{}
	for i, s := range secrets {
		if s.Name != secretNames[i] {
			t.Errorf("secret %d = %s, want %s", i, s.Name, secretNames[i])
		}
		if len(s.Value) != secretLength {
			t.Errorf("%s has length %d", s.Name, len(s.Value))
		}
		if strings.ContainsAny(s.Value, `'\`) {
			t.Errorf("%s contains a character that breaks PHP quoting: %q", s.Name, s.Value)
		}
		if seen[s.Value] {
			t.Errorf("%s repeats an earlier value", s.Name)
		}
		seen[s.Value] = true
	}
}

func TestRenderWPConfigEscapesValues(t *testing.T) {
	root := t.TempDir()
	rc := &RunContext{
		Root:     root,
		DB:       database.Credentials{Host: "localhost", Name: "site", User: "root", Password: `it's\fine`},
		DBPrefix: "wp_",
		Secrets:  []Secret{{Name: "AUTH_KEY", Value: "abc"}},
	}
	dest := filepath.Join(root, "app", "wp-config.php")
	if err := render("wp-config.php.tmpl", dest, rc); err != nil {
		t.Fatalf("render: %v", err)
	}
	got := readFile(t, dest)
	if !strings.Contains(got, `define('DB_PASSWORD', 'it\'s\\fine');`) {
		t.Errorf("password not escaped:\n%s", got)
	}
	if !strings.Contains(got, "define('AUTH_KEY', 'abc');") {
		t.Errorf("secret missing:\n%s", got)
	}
}

func TestRenderPackageJSONQuotesValues(t *testing.T) {
	root := t.TempDir()
	rc := &RunContext{Root: root, ThemeSlug: "mytheme", SiteTitle: `The "Best" Site`, AuthorName: "Jane"}
	dest := filepath.Join(root, "package.json")
	if err := render("package.json.tmpl", dest, rc); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := readFile(t, dest); !strings.Contains(got, `"description": "The \"Best\" Site"`) {
		t.Errorf("description not JSON-quoted:\n%s", got)
	}
}

func TestQuestionsDefaults(t *testing.T) {
	specs := Questions(config.StoredConfig{AuthorName: "Stored"})
	byName := map[string]prompt.Spec{}
	for _, s := range specs {
		byName[s.Name] = s
	}

	if byName[QThemeName].Default != DefaultThemeName {
		t.Errorf("theme default = %q", byName[QThemeName].Default)
	}
	if byName[QThemeURL].Default != config.DefaultTheme {
		t.Errorf("theme URL default = %q", byName[QThemeURL].Default)
	}
	if byName[QAuthorName].Default != "Stored" || byName[QAuthorURI].Default != "" {
		t.Errorf("author defaults = %q, %q", byName[QAuthorName].Default, byName[QAuthorURI].Default)
	}
	if !byName[QAdminPassword].Secret || !byName[QDBPassword].Secret {
		t.Error("passwords should be secret")
	}

	earlier := prompt.Answers{QThemeName: "Corporate Site"}
	if got := byName[QSiteTitle].Derive(earlier); got != "Corporate Site" {
		t.Errorf("derived title = %q", got)
	}
	if got := byName[QDBName].Derive(earlier); got != "corporatesite" {
		t.Errorf("derived database name = %q", got)
	}
	if got := byName[QSiteURL].Derive(earlier); got != "http://localhost/corporatesite" {
		t.Errorf("derived site URL = %q", got)
	}
}

func TestApplyDerivesThemeValues(t *testing.T) {
	rc := &RunContext{Root: "/tmp/site"}
	rc.apply(prompt.Answers{
		QThemeName: "My Theme",
		QThemeURL:  "https://github.com/acme/starter/tree/develop",
		QDBName:    "site",
	})
	if rc.ThemeSlug != "mytheme" {
		t.Errorf("slug = %q", rc.ThemeSlug)
	}
	if rc.ThemeArchive != "https://github.com/acme/starter/archive/develop.tar.gz" {
		t.Errorf("archive = %q", rc.ThemeArchive)
	}
	if rc.ThemeDir() != filepath.Join("/tmp/site", "app", "wp-content", "themes", "mytheme") {
		t.Errorf("theme dir = %q", rc.ThemeDir())
	}
	if rc.DB.Name != "site" {
		t.Errorf("db = %+v", rc.DB)
	}
}
