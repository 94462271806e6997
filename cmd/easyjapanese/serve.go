package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/a-h/easyjapanese/completion"
	easyjapanesepost "github.com/a-h/easyjapanese/handlers/easyjapanese/post"
	pageget "github.com/a-h/easyjapanese/handlers/easyjapanese/page/get"
	pagepost "github.com/a-h/easyjapanese/handlers/easyjapanese/page/post"
	healthget "github.com/a-h/easyjapanese/handlers/health/get"
	"github.com/a-h/easyjapanese/pipeline"
	"github.com/a-h/easyjapanese/prompt"
	"github.com/rs/cors"
)

type ServeCommand struct {
	ListenAddr        string        `help:"The address to listen on." env:"LISTEN_ADDR" default:"localhost:9020"`
	OpenAIBaseURL     string        `help:"The base URL of an OpenAI compatible API. Leave empty to use OpenAI." env:"OPENAI_BASE_URL" default:""`
	DefaultModel      string        `help:"The model used by the form when none is entered." env:"DEFAULT_MODEL" default:"gpt-4o-mini"`
	RequestTimeout    time.Duration `help:"The timeout for each completion request." env:"REQUEST_TIMEOUT" default:"60s"`
	SummaryPromptFile string        `help:"A file containing the summary prompt. It must contain {article} once." env:"SUMMARY_PROMPT_FILE" default:""`
	EasyPromptFile    string        `help:"A file containing the easy Japanese prompt. It must contain {summary} once." env:"EASY_PROMPT_FILE" default:""`
	TestAPIKey        string        `help:"Requests using this API key are answered by an echo model, for integration tests." env:"TEST_API_KEY" default:""`
	CORSAllowAll      bool          `help:"Allow cross origin requests from any origin." env:"CORS_ALLOW_ALL" default:"true"`
	TLSCertFile       string        `help:"The TLS certificate file." env:"TLS_CERT_FILE" default:""`
	TLSKeyFile        string        `help:"The TLS key file." env:"TLS_KEY_FILE" default:""`
	LogLevel          string        `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func readFileOrDefault(filename, defaultContent string) (string, error) {
	if filename == "" {
		return defaultContent, nil
	}
	contents, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return string(contents), nil
}

func loadTemplate(filename, defaultContent, variable string) (t prompt.Template, err error) {
	text, err := readFileOrDefault(filename, defaultContent)
	if err != nil {
		return t, err
	}
	return prompt.New(text, variable)
}

func (c ServeCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)

	summaryTemplate, err := loadTemplate(c.SummaryPromptFile, prompt.Summary, prompt.ArticleVar)
	if err != nil {
		return fmt.Errorf("invalid summary prompt: %w", err)
	}
	easyTemplate, err := loadTemplate(c.EasyPromptFile, prompt.Easy, prompt.SummaryVar)
	if err != nil {
		return fmt.Errorf("invalid easy prompt: %w", err)
	}
	p := pipeline.NewWithTemplates(log, summaryTemplate, easyTemplate)

	if c.TestAPIKey != "" {
		log.Warn("test API key enabled, requests using it will not call the completion service")
	}
	newModel := completion.NewOpenAIFactory(completion.Options{
		BaseURL:    c.OpenAIBaseURL,
		Timeout:    c.RequestTimeout,
		TestAPIKey: c.TestAPIKey,
	})

	mux := http.NewServeMux()

	mux.Handle("POST /easy_japanese", easyjapanesepost.New(log, newModel, p))
	mux.Handle("GET /easy_japanese/{id}", pageget.New(log, c.DefaultModel))
	mux.Handle("POST /easy_japanese/{id}", pagepost.New(log, newModel, p, c.DefaultModel))
	mux.Handle("GET /healthz", healthget.Handler{})

	var h http.Handler = mux
	if c.CORSAllowAll {
		h = cors.AllowAll().Handler(mux)
	}

	log.Info("Listening", slog.String("addr", c.ListenAddr), slog.String("defaultModel", c.DefaultModel))
	s := &http.Server{
		Addr:              c.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if c.TLSCertFile != "" && c.TLSKeyFile != "" {
		log.Info("Enabling TLS mode")
		var cert tls.Certificate
		cert, err = tls.LoadX509KeyPair(c.TLSCertFile, c.TLSKeyFile)
		if err != nil {
			return fmt.Errorf("failed to load cert: %w", err)
		}
		s.TLSConfig = &tls.Config{
			MinVersion:   tls.VersionTLS12,
			Certificates: []tls.Certificate{cert},
		}
		return s.ListenAndServeTLS(c.TLSCertFile, c.TLSKeyFile)
	}
	return s.ListenAndServe()
}
