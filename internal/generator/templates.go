package generator

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed templates/*
var templateFS embed.FS

var funcs = template.FuncMap{
	// php escapes a value for a single-quoted PHP string literal.
	"php": func(s string) string {
		return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
	},
	// json renders a value as a JSON literal, quotes included.
	"json": func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	},
}

var templates = template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))

// projectFiles maps template names to the files written at the project root.
var projectFiles = []struct {
	tmpl string
	dest string
}{
	{"Gruntfile.js.tmpl", "Gruntfile.js"},
	{"bowerrc.tmpl", ".bowerrc"},
	{"package.json.tmpl", "package.json"},
	{"gitignore.tmpl", ".gitignore"},
	{"gitattributes.tmpl", ".gitattributes"},
}

// render executes the named template with rc and writes the result to dest,
// creating parent directories as needed.
func render(name, dest string, rc *RunContext) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, rc); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", dest, err)
	}
	if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}
