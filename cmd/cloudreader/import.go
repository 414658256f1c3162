package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/justyntemme/cloudreader/internal/content"
)

// Import errors
var (
	ErrNoBooksDir = errors.New("content.dir is not set, pass --books or set it in the config file")
	ErrNoFiles    = errors.New("no files to import")
	ErrNoEPUB     = errors.New("no epub files found")
	ErrImport     = errors.New("some imports failed")
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <files>...",
	Short: "Copy EPUB files into the books directory",
	Long: `Copy EPUB files into the books directory (content.dir) read by the
epub content source. Arguments may be comma separated lists or glob patterns.`,
	Example: `  cloudreader import --books ~/books novel.epub
  cloudreader import 'downloads/*.epub'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return importBooks(cmd.Context(), cmd.OutOrStdout(), cfg.Content.Dir, args)
	},
}

// expandFiles resolves comma separated lists and glob patterns into the
// EPUB files they name
func expandFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		for _, pattern := range strings.Split(arg, ",") {
			pattern = strings.TrimSpace(pattern)
			if pattern == "" {
				continue
			}

			matches, err := filepath.Glob(pattern)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid pattern %q", pattern)
			}

			if len(matches) == 0 {
				if _, err := os.Stat(pattern); err != nil {
					return nil, errors.Errorf("no files found matching %q", pattern)
				}
				matches = []string{pattern}
			}
			files = append(files, matches...)
		}
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	var epubFiles []string
	for _, f := range files {
		if strings.HasSuffix(strings.ToLower(f), ".epub") {
			epubFiles = append(epubFiles, f)
		}
	}
	if len(epubFiles) == 0 {
		return nil, ErrNoEPUB
	}
	return epubFiles, nil
}

// importBooks copies the EPUB files named by args into dir and reports the
// title each one is listed under
func importBooks(ctx context.Context, out io.Writer, dir string, args []string) error {
	if dir == "" {
		return ErrNoBooksDir
	}
	files, err := expandFiles(args)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return errors.Wrap(err, "create books directory")
	}

	fmt.Fprintf(out, "Importing %d file(s) into %s...\n", len(files), dir)

	imported := make(map[string]bool, len(files))
	for _, f := range files {
		fmt.Fprintf(out, "  Importing %s... ", filepath.Base(f))
		if err := copyFile(f, filepath.Join(dir, filepath.Base(f))); err != nil {
			fmt.Fprintf(out, "FAILED: %v\n", err)
			log.Warn().Err(err).Str("file", f).Msg("import failed")
			continue
		}
		fmt.Fprintln(out, "OK")
		imported[filepath.Base(f)] = true
	}

	catalog, err := content.NewEPUBLibrary(dir)
	if err != nil {
		return err
	}
	novels, err := catalog.AllNovels(ctx)
	if err != nil {
		return err
	}
	for _, n := range novels {
		if !imported[filepath.Base(n.FilePath)] {
			continue
		}
		if n.IsCorrupted {
			fmt.Fprintf(out, "    %s: not a readable EPUB\n", filepath.Base(n.FilePath))
			continue
		}
		fmt.Fprintf(out, "    Title: %s\n    Author: %s\n    Chapters: %d\n", n.Title, n.Author, n.ChapterCount)
	}

	fmt.Fprintf(out, "\nImported %d/%d files successfully.\n", len(imported), len(files))
	if len(imported) < len(files) {
		return ErrImport
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "open")
	}
	defer in.Close()

	if same, err := sameFile(src, dst); err == nil && same {
		return nil
	}

	outFile, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, "create")
	}
	if _, err := io.Copy(outFile, in); err != nil {
		outFile.Close()
		return errors.Wrap(err, "copy")
	}
	return errors.Wrap(outFile.Close(), "close")
}

func sameFile(a, b string) (bool, error) {
	sa, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	sb, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	return os.SameFile(sa, sb), nil
}
