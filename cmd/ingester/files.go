package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/docchat/server/internal/chunker"
	"codeberg.org/docchat/server/internal/config"
	"codeberg.org/docchat/server/internal/docstore"
	"codeberg.org/docchat/server/internal/logger"
	"codeberg.org/docchat/server/internal/rag"
)

// IngestFiles uploads and indexes every text/markdown file under the
// configured path, one document per file. a single file's failure does
// not stop the run.
func IngestFiles(ctx context.Context, svc *rag.Service, flags config.Flags) error {
	logger.Info("starting file ingestion", "path", flags.Path, "clear", flags.Clear)

	if flags.Clear {
		logger.Info("clearing existing corpus")

		if err := svc.Reset(ctx); err != nil {
			return fmt.Errorf("failed to clear corpus: %w", err)
		}
	}

	paths, err := collectFiles(flags.Path)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		return fmt.Errorf("no .txt or .md files found under %s", flags.Path)
	}

	indexed := 0
	failed := 0

	for _, path := range paths {
		doc, err := ingestFile(ctx, svc, path)

		switch {
		case err != nil:
			logger.Warn("failed to ingest file", "path", path, "error", err)
			failed++

		case doc.Status != docstore.StatusIndexed:
			logger.Warn("file did not index cleanly",
				"path", path,
				"status", string(doc.Status),
				"error", doc.Error,
			)
			failed++

		default:
			logger.Info("file indexed",
				"path", path,
				"document_id", doc.ID,
				"pages", doc.PageCount,
				"chunks", doc.ChunkCount,
			)
			indexed++
		}
	}

	logger.Info("ingestion finished", "indexed", indexed, "failed", failed)

	if indexed == 0 {
		return fmt.Errorf("all %d files failed to ingest", failed)
	}

	return nil
}

func ingestFile(ctx context.Context, svc *rag.Service, path string) (*docstore.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return svc.IngestDocument(ctx, filepath.Base(path), splitPages(string(raw)))
}

// form feeds separate pages; files without them are a single page
func splitPages(text string) []chunker.Page {
	parts := strings.Split(text, "\f")
	pages := make([]chunker.Page, 0, len(parts))

	for i, part := range parts {
		pages = append(pages, chunker.Page{Number: i + 1, Text: part})
	}

	return pages
}

func collectFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}

	if !info.IsDir() {
		return []string{root}, nil
	}

	var paths []string

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt", ".md":
			paths = append(paths, path)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return paths, nil
}
