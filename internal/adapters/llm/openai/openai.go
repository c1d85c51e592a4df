package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"

	"github.com/iamwavecut/guessbot/internal/adapters/llm"
)

type API struct {
	client         *openai.Client
	imageModel     string
	imageSize      string
	embeddingModel string
	logger         *log.Entry
}

const (
	DefaultImageModel     = openai.CreateImageModelDallE3
	DefaultImageSize      = openai.CreateImageSize1024x1024
	DefaultEmbeddingModel = string(openai.SmallEmbedding3)
)

func NewOpenAI(apiKey, baseURL string, logger *log.Entry) *API {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	api := &API{
		client: openai.NewClientWithConfig(config),
		logger: logger,
	}
	api.WithImageModel("", "")
	api.WithEmbeddingModel("")
	return api
}

func (o *API) WithImageModel(model, size string) *API {
	if model == "" {
		model = DefaultImageModel
	}
	if size == "" {
		size = DefaultImageSize
	}
	o.imageModel = model
	o.imageSize = size
	return o
}

func (o *API) WithEmbeddingModel(model string) *API {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	o.embeddingModel = model
	return o
}

func (o *API) Generate(ctx context.Context, prompt string) (llm.Image, error) {
	resp, err := o.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          o.imageModel,
		N:              1,
		Size:           o.imageSize,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return llm.Image{}, describe(err)
	}
	if len(resp.Data) == 0 {
		return llm.Image{}, errors.New("no image in response")
	}

	data := resp.Data[0]
	image := llm.Image{URL: data.URL}
	if data.B64JSON != "" {
		image.Data, err = base64.StdEncoding.DecodeString(data.B64JSON)
		if err != nil {
			return llm.Image{}, fmt.Errorf("decode image: %w", err)
		}
	}
	if image.Empty() {
		return llm.Image{}, errors.New("empty image in response")
	}
	o.logger.WithField("bytes", len(image.Data)).Debug("image generated")
	return image, nil
}

func (o *API) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: []string{text},
		Model: openai.EmbeddingModel(o.embeddingModel),
	})
	if err != nil {
		return nil, describe(err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("no embedding for %q", text)
	}
	return resp.Data[0].Embedding, nil
}

// describe keeps the status code of API errors in the message shown to players.
func describe(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("%d: %v", reqErr.HTTPStatusCode, reqErr.Err)
	}
	return err
}
