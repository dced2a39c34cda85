// Package theme derives theme identifiers and starter-theme archive locations.
package theme

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultBranch is used when a repository URL names no branch.
const DefaultBranch = "master"

// archiveSuffixes mark a URL that already points at a downloadable archive.
var archiveSuffixes = []string{".tar.gz", ".tgz", ".tar.bz2", ".tar.xz", ".tar", ".zip", ".7z"}

// Slug normalizes a theme name into its directory identifier: spaces removed, lowercased.
func Slug(name string) string {
	return cases.Lower(language.Und).String(strings.ReplaceAll(name, " ", ""))
}

// Title returns name in title case, used for human-facing defaults such as the site title.
func Title(name string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(name))
}

// ArchiveURL derives the gzip-tar archive URL for a starter theme reference.
//
// Direct archive links are returned unchanged. A repository URL, optionally followed by
// /tree/<branch>, becomes <repo>/archive/<branch>.tar.gz with the branch defaulting to master.
func ArchiveURL(raw string) string {
	ref := strings.TrimSpace(raw)
	if IsArchive(ref) {
		return ref
	}

	ref = strings.TrimRight(ref, "/")
	branch := DefaultBranch
	if i := strings.Index(ref, "/tree/"); i >= 0 {
		if b := strings.Trim(ref[i+len("/tree/"):], "/"); b != "" {
			branch = b
		}
		ref = ref[:i]
	}
	ref = strings.TrimSuffix(ref, ".git")

	return fmt.Sprintf("%s/archive/%s.tar.gz", ref, branch)
}

// IsArchive reports whether ref already points at an archive rather than a repository.
func IsArchive(ref string) bool {
	lower := strings.ToLower(ref)
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return strings.Contains(lower, "/archive/") || strings.Contains(lower, "/tarball/")
}
