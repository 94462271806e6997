package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
)

// loadArticle reads the article text from a file. HTML is reduced to its
// body text and PDFs to the text of each page, anything else is read as-is.
func loadArticle(ctx context.Context, name string) (text string, err error) {
	f, err := os.Open(name)
	if err != nil {
		return "", fmt.Errorf("failed to open article: %w", err)
	}
	defer f.Close()

	var loader documentloaders.Loader
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		loader = documentloaders.NewHTML(f)
	case ".pdf":
		fi, err := f.Stat()
		if err != nil {
			return "", fmt.Errorf("failed to stat article: %w", err)
		}
		loader = documentloaders.NewPDF(f, fi.Size())
	default:
		loader = documentloaders.NewText(f)
	}
	docs, err := loader.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load article %s: %w", name, err)
	}
	return joinPages(docs), nil
}

func readArticle(ctx context.Context, r io.Reader) (string, error) {
	docs, err := documentloaders.NewText(r).Load(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read article: %w", err)
	}
	return joinPages(docs), nil
}

func joinPages(docs []schema.Document) string {
	var sb strings.Builder
	for _, doc := range docs {
		sb.WriteString(doc.PageContent)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}
