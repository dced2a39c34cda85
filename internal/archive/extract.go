package archive

import (
	"archive/tar"    // For reading .tar archives
	"archive/zip"    // For reading .zip archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data
	"wp-starter/internal/logger"
)

// Archive formats understood by Extract.
const (
	FormatTarGz  = ".tar.gz"
	FormatTarBz2 = ".tar.bz2"
	FormatTarXz  = ".tar.xz"
	FormatTar    = ".tar"
	FormatZip    = ".zip"
	Format7z     = ".7z"
)

// DetectFormat infers the archive format from a file name or URL.
// Anything unrecognized is assumed to be gzip-tar, which is what source-archive
// endpoints such as /tarball/<ref> serve.
func DetectFormat(name string) string {
	lower := strings.ToLower(name)
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip
	case strings.HasSuffix(lower, ".7z"):
		return Format7z
	case strings.HasSuffix(lower, ".tar.bz2"):
		return FormatTarBz2
	case strings.HasSuffix(lower, ".tar.xz"):
		return FormatTarXz
	case strings.HasSuffix(lower, ".tar"):
		return FormatTar
	default:
		return FormatTarGz
	}
}

// Extract unpacks the archive at src into dest, creating dest if needed. When every entry
// sits below one top-level directory, that wrapper is stripped so its contents land
// directly in dest.
func Extract(src, dest, format string) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("create destination %s: %w", dest, err)
	}

	// Unpack next to dest so the final moves are renames on the same filesystem.
	staging, err := os.MkdirTemp(filepath.Dir(filepath.Clean(dest)), ".extract-*")
	if err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	logger.Debug("[DEBUG] Uncompressing %s (%s) to %s\n", src, format, staging)
	switch format {
	case FormatZip:
		err = extractZip(src, staging)
	case Format7z:
		err = extract7z(src, staging)
	case FormatTarGz, FormatTarBz2, FormatTarXz, FormatTar:
		err = extractTar(src, staging, format)
	default:
		err = fmt.Errorf("unsupported archive format: %s", format)
	}
	if err != nil {
		return err
	}

	root, err := unwrap(staging)
	if err != nil {
		return err
	}
	return MoveContents(root, dest)
}

// unwrap returns the single top-level directory of dir, or dir itself when the
// archive had several top-level entries.
func unwrap(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	if len(entries) == 1 && entries[0].IsDir() {
		logger.Debug("[DEBUG] Stripping wrapper directory %s\n", entries[0].Name())
		return filepath.Join(dir, entries[0].Name()), nil
	}
	return dir, nil
}

// safeJoin joins name onto dest and rejects entries that would escape dest.
func safeJoin(dest, name string) (string, error) {
	dest = filepath.Clean(dest)
	target := filepath.Join(dest, name)
	if target != dest && !strings.HasPrefix(target, dest+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes destination", name)
	}
	return target, nil
}

// writeFile copies r into path, creating parent directories.
func writeFile(path string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if mode.Perm() == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// extractTar handles tar and compressed tar variants
func extractTar(src, dest, format string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	var reader io.Reader = f
	switch format {
	case FormatTarGz:
		gr, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("open gzip stream: %w", err)
		}
		defer gr.Close()
		reader = gr
	case FormatTarBz2:
		reader = bzip2.NewReader(f)
	case FormatTarXz:
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return fmt.Errorf("open xz stream: %w", err)
		}
		reader = xzr
	}

	tr := tar.NewReader(reader)

	// Iterate over each file in the archive
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break // End of archive
		}
		if err != nil {
			return fmt.Errorf("read tar entry: %w", err)
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, hdr.FileInfo().Mode()); err != nil {
				return err
			}
		default:
			// pax headers, links and devices carry nothing a project tree needs
			logger.Debug("[DEBUG] Skipping tar entry %s (type %c)\n", hdr.Name, hdr.Typeflag)
		}
	}
	return nil
}

// extractZip extracts a .zip archive
func extractZip(src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("open zip archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		path, err := safeJoin(dest, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		err = writeFile(path, rc, f.Mode())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// extract7z handles .7z extraction using the sevenzip library
func extract7z(src, dest string) error {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		path, err := safeJoin(dest, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		err = writeFile(path, rc, f.Mode())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
