package main

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-h/easyjapanese/client"
	"github.com/a-h/easyjapanese/models"
	"github.com/pluja/pocketbase"
	"gopkg.in/yaml.v3"
)

type BatchCommand struct {
	ServerURL     string `help:"The URL of the easy Japanese server." env:"EASY_JAPANESE_SERVER_URL" default:"http://localhost:9020"`
	OpenAIAPIKey  string `help:"The OpenAI API key." env:"OPENAI_API_KEY"`
	ModelID       string `help:"The model to use." env:"MODEL_ID" default:"gpt-4o-mini"`
	PocketbaseURL string `help:"The URL of the Pocketbase server." env:"POCKETBASE_URL" default:"http://localhost:8090"`
	Collection    string `help:"The name of the collection containing articles." env:"COLLECTION" default:"articles"`
	ArticleField  string `help:"The field containing the article text." env:"ARTICLE_FIELD" default:"article"`
	Files         string `help:"Comma separated list of fields that contain Pocketbase file references. Text, HTML and PDF files are appended to the article." env:"FILES" default:""`
	ID            string `help:"The ID of a single record to simplify." env:"ID" default:""`
	DryRun        bool   `help:"List the articles without simplifying them." env:"DRY_RUN" default:"false"`
	LogLevel      string `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

// BatchResult is written to stdout as one YAML document per article.
type BatchResult struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	Easy    string `yaml:"easy"`
}

func (c BatchCommand) Run(ctx context.Context) (err error) {
	return c.run(ctx, getLogger(c.LogLevel), os.Stdout)
}

func (c BatchCommand) run(ctx context.Context, log *slog.Logger, w io.Writer) (err error) {
	ejc := client.New(c.ServerURL)

	enc := yaml.NewEncoder(w)
	defer enc.Close()

	pbe := NewPocketbaseExporter(c.PocketbaseURL, pocketbase.NewClient(c.PocketbaseURL), c.Collection, c.ArticleField, c.Files)
	for a := range pbe.Export(ctx) {
		if c.ID != "" && a.ID != c.ID {
			continue
		}
		if a.Text == "" {
			log.Warn("skipping record without article text", slog.String("id", a.ID))
			continue
		}
		log.Info("simplifying article", slog.String("id", a.ID), slog.String("title", a.Title))
		if c.DryRun {
			log.Info("skipping article in dry run mode", slog.String("id", a.ID))
			continue
		}
		resp, err := ejc.EasyJapanesePost(ctx, models.EasyJapanesePostRequest{
			OpenAIAPIKey: c.OpenAIAPIKey,
			ModelID:      c.ModelID,
			Article:      a.Text,
		})
		if err != nil {
			return fmt.Errorf("failed to simplify article %s: %w", a.ID, err)
		}
		err = enc.Encode(BatchResult{
			ID:      a.ID,
			Title:   a.Title,
			Summary: resp.Summary,
			Easy:    resp.Easy,
		})
		if err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		log.Info("article simplified", slog.String("id", a.ID))
	}
	return pbe.Error
}

func NewPocketbaseExporter(baseURL string, client *pocketbase.Client, collection, articleField, files string) *PocketbaseExporter {
	var fileFields []string
	for _, f := range strings.Split(files, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fileFields = append(fileFields, f)
		}
	}
	return &PocketbaseExporter{
		baseURL:      baseURL,
		client:       client,
		collection:   collection,
		articleField: articleField,
		files:        fileFields,
		httpClient:   http.DefaultClient,
		PageSize:     10,
		Error:        nil,
	}
}

type PocketbaseExporter struct {
	// baseURL for downloading files, e.g. http://localhost:8090
	baseURL      string
	client       *pocketbase.Client
	collection   string
	articleField string
	files        []string
	httpClient   *http.Client
	PageSize     int
	Error        error
}

type ExportedArticle struct {
	ID    string
	Title string
	Text  string
}

func (p *PocketbaseExporter) Export(ctx context.Context) iter.Seq[ExportedArticle] {
	var page int
	return func(yield func(ExportedArticle) bool) {
		for {
			if ctx.Err() != nil {
				return
			}
			if p.Error != nil {
				return
			}
			page++
			response, err := p.client.List(p.collection, pocketbase.ParamsList{
				Page: page,
				Size: p.PageSize,
				Sort: "-created",
			})
			if err != nil {
				p.Error = err
				return
			}
			if len(response.Items) == 0 {
				return
			}
			for _, item := range response.Items {
				a, err := p.createArticle(ctx, item)
				if err != nil {
					// A partial article would be simplified as if it were complete.
					p.Error = err
					return
				}
				if !yield(a) {
					return
				}
			}
		}
	}
}

func useItemOrDefault(item map[string]any, keys []string, defaultValue string) string {
	for _, key := range keys {
		if value, ok := item[key].(string); ok && value != "" {
			return value
		}
	}
	return defaultValue
}

// fileNames returns the file names in a Pocketbase file field, which is a
// string for single file fields and a list otherwise.
func fileNames(v any) (names []string) {
	switch v := v.(type) {
	case string:
		if v != "" {
			names = append(names, v)
		}
	case []any:
		for _, name := range v {
			if s, ok := name.(string); ok && s != "" {
				names = append(names, s)
			}
		}
	}
	return names
}

var loadableExtensions = map[string]bool{
	".txt":  true,
	".html": true,
	".htm":  true,
	".pdf":  true,
}

func (p *PocketbaseExporter) createArticle(ctx context.Context, item map[string]any) (a ExportedArticle, err error) {
	a.ID, _ = item["id"].(string)
	a.Title = useItemOrDefault(item, []string{"title", "headline", "name"}, "Untitled")

	var sb strings.Builder
	sb.WriteString(useItemOrDefault(item, []string{p.articleField}, ""))

	for _, fileFieldName := range p.files {
		for _, fileName := range fileNames(item[fileFieldName]) {
			if err = ctx.Err(); err != nil {
				return a, err
			}
			if !loadableExtensions[strings.ToLower(filepath.Ext(fileName))] {
				continue
			}
			var fileText string
			fileText, err = p.getFileText(ctx, a.ID, fileName)
			if err != nil {
				return a, fmt.Errorf("failed to get file text for record %s: %w", a.ID, err)
			}
			sb.WriteString("\n")
			sb.WriteString(fileText)
		}
	}

	a.Text = strings.TrimSpace(sb.String())
	return a, nil
}

func (p *PocketbaseExporter) getFileText(ctx context.Context, id, filename string) (string, error) {
	downloadURL, err := createURL(p.baseURL, "api", "files", p.collection, id, filename)
	if err != nil {
		return "", fmt.Errorf("failed to create download URL: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create download request: %w", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download file: unexpected status %d", resp.StatusCode)
	}

	// The loaders pick a format from the extension, so keep it.
	f, err := os.CreateTemp("", "easyjapanese-batch-*"+filepath.Ext(filename))
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(f.Name())
	defer f.Close()

	if _, err = io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return loadArticle(ctx, f.Name())
}

func createURL(baseURL string, pathSegments ...string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse baseURL: %w", err)
	}
	u.Path = strings.Join(pathSegments, "/")
	return u.String(), nil
}
