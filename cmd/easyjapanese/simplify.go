package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/a-h/easyjapanese/client"
	"github.com/a-h/easyjapanese/completion"
	"github.com/a-h/easyjapanese/models"
	"github.com/a-h/easyjapanese/pipeline"
)

type SimplifyCommand struct {
	Article        string        `arg:"" optional:"" help:"The article text. If empty, the article is read from --file, or stdin."`
	File           string        `help:"A text, HTML or PDF file containing the article." type:"existingfile"`
	ServerURL      string        `help:"The URL of the easy Japanese server." env:"EASY_JAPANESE_SERVER_URL" default:"http://localhost:9020"`
	OpenAIAPIKey   string        `help:"The OpenAI API key." env:"OPENAI_API_KEY"`
	ModelID        string        `help:"The model to use." env:"MODEL_ID" default:"gpt-4o-mini"`
	Local          bool          `help:"Run the pipeline in this process instead of calling the server."`
	OpenAIBaseURL  string        `help:"The base URL of an OpenAI compatible API, used with --local." env:"OPENAI_BASE_URL" default:""`
	RequestTimeout time.Duration `help:"The timeout for each completion request, used with --local." env:"REQUEST_TIMEOUT" default:"60s"`
	Pretty         bool          `help:"Pretty print the JSON output." default:"true"`
	LogLevel       string        `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func (c SimplifyCommand) Run(ctx context.Context) (err error) {
	article := c.Article
	if article == "" && c.File != "" {
		article, err = loadArticle(ctx, c.File)
	} else if article == "" {
		article, err = readArticle(ctx, os.Stdin)
	}
	if err != nil {
		return err
	}

	req := models.EasyJapanesePostRequest{
		OpenAIAPIKey: c.OpenAIAPIKey,
		ModelID:      c.ModelID,
		Article:      article,
	}
	if err = req.Validate(); err != nil {
		return err
	}

	var resp models.EasyJapanesePostResponse
	if c.Local {
		resp, err = c.runLocal(ctx, req)
	} else {
		resp, err = client.New(c.ServerURL).EasyJapanesePost(ctx, req)
	}
	if err != nil {
		return fmt.Errorf("failed to simplify article: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	if c.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(resp)
}

func (c SimplifyCommand) runLocal(ctx context.Context, req models.EasyJapanesePostRequest) (resp models.EasyJapanesePostResponse, err error) {
	log := getLogger(c.LogLevel)
	newModel := completion.NewOpenAIFactory(completion.Options{
		BaseURL: c.OpenAIBaseURL,
		Timeout: c.RequestTimeout,
	})
	llm, err := newModel(req.OpenAIAPIKey, req.ModelID)
	if err != nil {
		return resp, err
	}
	result, err := pipeline.New(log).Run(ctx, llm, req.Article)
	if err != nil {
		return resp, err
	}
	return models.EasyJapanesePostResponse{
		Summary: result.Summary,
		Easy:    result.Easy,
	}, nil
}
