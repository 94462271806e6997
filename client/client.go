package client

import (
	"context"

	"github.com/a-h/easyjapanese/models"
	"github.com/a-h/jsonapi"
)

func New(baseURL string) Client {
	return Client{
		baseURL: baseURL,
	}
}

type Client struct {
	baseURL string
}

// EasyJapanesePost summarizes and simplifies an article. The caller's API key
// travels in the request body, the server doesn't keep it.
func (c Client) EasyJapanesePost(ctx context.Context, req models.EasyJapanesePostRequest) (resp models.EasyJapanesePostResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("easy_japanese").String()
	if err != nil {
		return resp, err
	}
	return jsonapi.Post[models.EasyJapanesePostRequest, models.EasyJapanesePostResponse](ctx, url, req)
}
