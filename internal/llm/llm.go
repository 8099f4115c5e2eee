// File path: internal/llm/llm.go
package llm

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/nicodishanthj/fitsight/internal/common"
	"github.com/nicodishanthj/fitsight/internal/llm/providers"
)

type Message = providers.Message

type Provider = providers.Provider

// NewProvider selects a generation backend from the environment. An OpenAI
// client is used when OPENAI_API_KEY is set; otherwise the offline stub is
// returned so callers never hold a nil provider.
func NewProvider() Provider {
	logger := common.Logger()
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey != "" {
		// Bounded retry lives in the insight generator; the SDK must not
		// add its own retry layer underneath it.
		opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
		if timeoutStr := strings.TrimSpace(os.Getenv("OPENAI_HTTP_TIMEOUT")); timeoutStr != "" {
			timeout, err := time.ParseDuration(timeoutStr)
			if err != nil {
				logger.Warn("llm: invalid OPENAI_HTTP_TIMEOUT, using default", "value", timeoutStr, "error", err)
			} else {
				logger.Info("llm: configuring OpenAI client with custom HTTP timeout", "timeout", timeout)
				opts = append(opts, option.WithHTTPClient(&http.Client{Timeout: timeout}))
			}
		}
		if endpoint := strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")); endpoint != "" {
			logger.Info("llm: configuring OpenAI client with custom endpoint", "endpoint", endpoint)
			opts = append(opts, option.WithBaseURL(endpoint))
		} else {
			logger.Debug("llm: using default OpenAI endpoint")
		}
		client := openai.NewClient(opts...)
		logger.Info("llm: OpenAI provider selected")
		return providers.NewOpenAIProvider(&client)
	}
	logger.Warn("llm: OPENAI_API_KEY not set; falling back to local provider")
	return providers.NewLocalProvider()
}

// NormalizeMessages lower-cases roles and rejects empty requests.
func NormalizeMessages(messages []Message) ([]Message, error) {
	if len(messages) == 0 {
		return nil, errors.New("no messages provided")
	}
	for i := range messages {
		messages[i].Role = strings.ToLower(messages[i].Role)
	}
	return messages, nil
}

// RateLimited reports whether a provider error is an explicit rate-limit
// rejection, the only failure class worth retrying.
func RateLimited(err error) bool {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return apierr.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// RetryAfterHint extracts the provider-suggested wait from a rate-limit
// error, or zero when the provider gave none.
func RetryAfterHint(err error) time.Duration {
	var apierr *openai.Error
	if !errors.As(err, &apierr) || apierr.Response == nil {
		return 0
	}
	header := strings.TrimSpace(apierr.Response.Header.Get("Retry-After"))
	if header == "" {
		return 0
	}
	if seconds, parseErr := time.ParseDuration(header + "s"); parseErr == nil && seconds > 0 {
		return seconds
	}
	return 0
}
