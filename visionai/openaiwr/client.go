// Package openaiwr implements visionai.Service on an OpenAI-compatible chat completions API.
package openaiwr

import (
	"context"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/sashabaranov/go-openai"

	"github.com/danyloborovskyi/caption-studio-back-sub003/logger"
	"github.com/danyloborovskyi/caption-studio-back-sub003/visionai"
)

const codeEmptyResponse = "EMPTY_RESPONSE"

// completer is the part of *openai.Client used by Client.
type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client implements visionai.Service.
type Client struct {
	api       completer
	model     string
	maxTokens int
	guard     visionai.URLGuard
	log       logger.Logger
}

var _ visionai.Service = (*Client)(nil)

// New creates a new vision client.
func New(cfg Config, log logger.Logger) (*Client, error) {
	err := defaults.Set(&cfg)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	oaCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oaCfg.BaseURL = cfg.BaseURL
	}

	return newClient(openai.NewClientWithConfig(oaCfg), cfg, log), nil
}

func newClient(api completer, cfg Config, log logger.Logger) *Client {
	return &Client{
		api:       api,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		guard:     visionai.NewURLGuard(cfg.AllowedDomains),
		log:       log.Named("openaiwr"),
	}
}

// AnalyzeImage describes and tags the image at imageURL.
// Every failure is logged and returned as an unsuccessful Analysis.
func (c *Client) AnalyzeImage(ctx context.Context, imageURL string, style visionai.TagStyle) visionai.Analysis {
	style = visionai.ParseTagStyle(string(style))

	err := c.guard.Validate(imageURL)
	if err != nil {
		return c.fail(ctx, imageURL, err)
	}

	resp, err := c.api.CreateChatCompletion(ctx, c.request(imageURL, style))
	if err != nil {
		return c.fail(ctx, imageURL, errx.Wrap(err))
	}

	if len(resp.Choices) == 0 {
		return c.fail(ctx, imageURL, errx.New(
			visionai.MsgUnparseableResponse,
			errx.WithCode(codeEmptyResponse),
			errx.WithDetails(errx.D{"model": resp.Model}),
		))
	}

	answer, err := visionai.ParseAnswer(resp.Choices[0].Message.Content)
	if err != nil {
		return c.fail(ctx, imageURL, err)
	}

	return visionai.Succeeded(answer, style)
}

// GenerateTags returns the tags of AnalyzeImage.
func (c *Client) GenerateTags(ctx context.Context, imageURL string, style visionai.TagStyle) visionai.TagsResult {
	return c.AnalyzeImage(ctx, imageURL, style).TagsResult()
}

// GenerateDescription returns the description of AnalyzeImage in the neutral style.
func (c *Client) GenerateDescription(ctx context.Context, imageURL string) visionai.DescriptionResult {
	return c.AnalyzeImage(ctx, imageURL, visionai.TagStyleNeutral).DescriptionResult()
}

func (c *Client) request(imageURL string, style visionai.TagStyle) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: visionai.BuildPrompt(style),
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    imageURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	}
}

func (c *Client) fail(ctx context.Context, imageURL string, err error) visionai.Analysis {
	c.log.WithContext(ctx).With("image_url", imageURL).Warnx(err)
	return visionai.Failed(err.Error())
}
