package models

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEasyJapanesePostRequestValidate(t *testing.T) {
	tests := []struct {
		name     string
		req      EasyJapanesePostRequest
		expected []string
	}{
		{
			name: "a complete request is valid",
			req: EasyJapanesePostRequest{
				OpenAIAPIKey: "sk-test",
				ModelID:      "gpt-4o-mini",
				Article:      "猫が好きです。",
			},
		},
		{
			name: "a missing article is reported",
			req: EasyJapanesePostRequest{
				OpenAIAPIKey: "sk-test",
				ModelID:      "gpt-4o-mini",
			},
			expected: []string{"article"},
		},
		{
			name: "whitespace only fields are missing",
			req: EasyJapanesePostRequest{
				OpenAIAPIKey: " ",
				ModelID:      "gpt-4o-mini",
				Article:      "\n\t",
			},
			expected: []string{"OPENAI_API_KEY", "article"},
		},
		{
			name:     "all missing fields are reported",
			req:      EasyJapanesePostRequest{},
			expected: []string{"OPENAI_API_KEY", "MODEL_ID", "article"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.expected == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if diff := cmp.Diff(tt.expected, ve.Fields); diff != "" {
				t.Error(diff)
			}
		})
	}
}
