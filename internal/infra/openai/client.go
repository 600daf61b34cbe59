package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/jinford/adgm-agent/internal/core/generation"
	"github.com/jinford/adgm-agent/internal/platform/retry"
)

const (
	// DefaultModel はデフォルトで使用するOpenAIモデル
	DefaultModel = "gpt-4o-mini"

	// DefaultTimeout はAPI呼び出しのデフォルトタイムアウト
	DefaultTimeout = 60 * time.Second

	// DefaultTemperature は法的分析の一貫性を優先した低い温度
	DefaultTemperature = 0.1

	// DefaultTopP は生成時の nucleus sampling パラメータ
	DefaultTopP = 0.95

	// DefaultMaxTokens は生成テキストの最大トークン数
	DefaultMaxTokens = 4096
)

var (
	// ErrAPIKeyNotSet はAPIキーが設定されていない場合のエラー
	ErrAPIKeyNotSet = errors.New("OpenAI API key not set: please set OPENAI_API_KEY environment variable")

	// ErrEmptyResponse は応答にテキストが含まれない場合のエラー
	ErrEmptyResponse = errors.New("empty response from model")
)

// Client は OpenAI API を使用した LLM クライアント実装
// 一時的な失敗（レート制限・サーバエラー）は指数バックオフでリトライする
type Client struct {
	client      openai.Client
	model       string
	temperature float64
	timeout     time.Duration
	retryPolicy retry.Policy
}

type clientOptions struct {
	model       string
	temperature float64
	timeout     time.Duration
	retryPolicy retry.Policy
}

// ClientOption は Client のオプション設定
type ClientOption func(*clientOptions)

// WithModel はモデル名を上書きする
func WithModel(model string) ClientOption {
	return func(o *clientOptions) {
		o.model = model
	}
}

// WithTemperature は生成温度を上書きする
func WithTemperature(temperature float64) ClientOption {
	return func(o *clientOptions) {
		o.temperature = temperature
	}
}

// WithTimeout はAPI呼び出しのタイムアウトを上書きする
func WithTimeout(timeout time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithRetryPolicy はリトライ方針を上書きする
func WithRetryPolicy(policy retry.Policy) ClientOption {
	return func(o *clientOptions) {
		o.retryPolicy = policy
	}
}

// NewClient は新しい Client を作成する
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyNotSet
	}

	options := clientOptions{
		model:       DefaultModel,
		temperature: DefaultTemperature,
		timeout:     DefaultTimeout,
		retryPolicy: retry.Policy{
			MaxAttempts:  3,
			BaseInterval: 2 * time.Second,
			MaxInterval:  32 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &Client{
		client:      openai.NewClient(option.WithAPIKey(apiKey)),
		model:       options.model,
		temperature: options.temperature,
		timeout:     options.timeout,
		retryPolicy: options.retryPolicy,
	}, nil
}

// ModelName はモデル名を返す
func (c *Client) ModelName() string {
	return c.model
}

// GenerateCompletion はプロンプトからテキストを生成する
// レート制限とサーバエラーのみリトライし、それ以外は即座に失敗させる
func (c *Client) GenerateCompletion(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.temperature),
		TopP:        openai.Float(DefaultTopP),
		MaxTokens:   openai.Int(DefaultMaxTokens),
	}

	var content string
	err := retry.Do(ctx, c.retryPolicy, func(ctx context.Context) error {
		completion, err := c.client.Chat.Completions.New(ctx, params)
		if err != nil {
			if isRetryableError(err) {
				return err
			}
			return retry.Permanent(err)
		}

		if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
			return ErrEmptyResponse
		}

		content = completion.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}

	return content, nil
}

// isRetryableError はリトライで回復しうるエラーかどうかを判定する
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}

	return false
}

// インターフェース実装の確認
var _ generation.Client = (*Client)(nil)
