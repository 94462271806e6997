package models

import "strings"

type EasyJapanesePostRequest struct {
	// OpenAIAPIKey is the caller's key. It's used for this request only.
	OpenAIAPIKey string `json:"OPENAI_API_KEY"`
	// ModelID of the completion model, e.g. gpt-4o-mini.
	ModelID string `json:"MODEL_ID"`
	// Article is the Japanese news article to summarize.
	Article string `json:"article"`
}

// Validate returns a ValidationError listing every missing field.
func (r EasyJapanesePostRequest) Validate() error {
	var ve ValidationError
	if strings.TrimSpace(r.OpenAIAPIKey) == "" {
		ve.Fields = append(ve.Fields, "OPENAI_API_KEY")
	}
	if strings.TrimSpace(r.ModelID) == "" {
		ve.Fields = append(ve.Fields, "MODEL_ID")
	}
	if strings.TrimSpace(r.Article) == "" {
		ve.Fields = append(ve.Fields, "article")
	}
	if len(ve.Fields) > 0 {
		return ve
	}
	return nil
}

type EasyJapanesePostResponse struct {
	Summary string `json:"summary"`
	Easy    string `json:"easy"`
}

type ValidationError struct {
	Fields []string
}

func (ve ValidationError) Error() string {
	return "missing required fields: " + strings.Join(ve.Fields, ", ")
}
