package completion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"liyu1981.xyz/sleep-telemetry-service/pkg/common"
)

const (
	DefaultBaseURL         = "https://api.openai.com/v1"
	DefaultAssistantID     = "asst_OiGYNlV63y7lopRWaauXezf6"
	DefaultPollInterval    = time.Second
	DefaultMaxPollAttempts = 120
	DefaultRunTimeout      = 3 * time.Minute
)

var (
	ErrMissingApiKey  = errors.New("completion api key is not set")
	ErrRunFailed      = errors.New("assistant run ended without completing")
	ErrPollExhausted  = errors.New("assistant run still pending after max poll attempts")
	ErrRunTimeout     = errors.New("assistant run timed out")
	ErrEmptyReply     = errors.New("assistant reply has no text content")
	ErrRequestFailure = errors.New("assistant api request failed")
)

// ICompletion submits one prompt and returns the assistant's reply text.
type ICompletion interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Options struct {
	BaseURL         string
	ApiKey          string
	AssistantID     string
	PollInterval    time.Duration
	MaxPollAttempts int
	RunTimeout      time.Duration
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.AssistantID == "" {
		o.AssistantID = DefaultAssistantID
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.MaxPollAttempts <= 0 {
		o.MaxPollAttempts = DefaultMaxPollAttempts
	}
	if o.RunTimeout <= 0 {
		o.RunTimeout = DefaultRunTimeout
	}
	return o
}

// AssistantClient drives the stateful assistants protocol: create a thread,
// post the prompt, start a run, poll it, then read the newest message.
type AssistantClient struct {
	httpClient *resty.Client
	opts       Options
}

func NewAssistantClient(opts Options) (*AssistantClient, error) {
	opts = opts.withDefaults()
	if opts.ApiKey == "" {
		return nil, ErrMissingApiKey
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(30*time.Second).
		SetAuthToken(opts.ApiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("OpenAI-Beta", "assistants=v2")

	return &AssistantClient{httpClient: client, opts: opts}, nil
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

type objectRef struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type messageList struct {
	Data []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text struct {
				Value string `json:"value"`
			} `json:"text"`
		} `json:"content"`
	} `json:"data"`
}

func (c *AssistantClient) do(req *resty.Request, method, url string) error {
	var apiErr apiError
	resp, err := req.SetError(&apiErr).Execute(method, url)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrRequestFailure, method, url, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: %s %s: status %d: %s", ErrRequestFailure, method, url, resp.StatusCode(), apiErr.Error.Message)
	}
	return nil
}

func (c *AssistantClient) createThread(ctx context.Context) (string, error) {
	var thread objectRef
	err := c.do(c.httpClient.R().SetContext(ctx).SetBody(map[string]any{}).SetResult(&thread), resty.MethodPost, "/threads")
	return thread.ID, err
}

func (c *AssistantClient) addMessage(ctx context.Context, threadID, prompt string) error {
	body := map[string]any{"role": "user", "content": prompt}
	return c.do(c.httpClient.R().SetContext(ctx).SetBody(body), resty.MethodPost, "/threads/"+threadID+"/messages")
}

func (c *AssistantClient) createRun(ctx context.Context, threadID string) (objectRef, error) {
	var run objectRef
	body := map[string]any{"assistant_id": c.opts.AssistantID}
	err := c.do(c.httpClient.R().SetContext(ctx).SetBody(body).SetResult(&run), resty.MethodPost, "/threads/"+threadID+"/runs")
	return run, err
}

func (c *AssistantClient) getRun(ctx context.Context, threadID, runID string) (objectRef, error) {
	var run objectRef
	err := c.do(c.httpClient.R().SetContext(ctx).SetResult(&run), resty.MethodGet, "/threads/"+threadID+"/runs/"+runID)
	return run, err
}

func (c *AssistantClient) waitRun(ctx context.Context, threadID, runID string) error {
	logger := common.GetLoggerWith(common.LoggerNameCompletion)
	pacer := rate.NewLimiter(rate.Every(c.opts.PollInterval), 1)

	for attempt := 1; attempt <= c.opts.MaxPollAttempts; attempt++ {
		if err := pacer.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrRunTimeout, err)
		}

		run, err := c.getRun(ctx, threadID, runID)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("%w: %v", ErrRunTimeout, err)
			}
			return err
		}

		switch run.Status {
		case "completed":
			logger.Info("Assistant run completed", zap.String("run_id", runID), zap.Int("attempts", attempt))
			return nil
		case "failed", "cancelled", "expired", "incomplete", "requires_action":
			return fmt.Errorf("%w: status %s", ErrRunFailed, run.Status)
		}
	}
	return ErrPollExhausted
}

func (c *AssistantClient) latestReply(ctx context.Context, threadID string) (string, error) {
	var list messageList
	req := c.httpClient.R().SetContext(ctx).
		SetQueryParams(map[string]string{"order": "desc", "limit": "1"}).
		SetResult(&list)
	if err := c.do(req, resty.MethodGet, "/threads/"+threadID+"/messages"); err != nil {
		return "", err
	}

	for _, msg := range list.Data {
		for _, content := range msg.Content {
			if content.Type == "text" && content.Text.Value != "" {
				return content.Text.Value, nil
			}
		}
	}
	return "", ErrEmptyReply
}

func (c *AssistantClient) Complete(ctx context.Context, prompt string) (string, error) {
	logger := common.GetLoggerWith(common.LoggerNameCompletion)

	ctx, cancel := context.WithTimeout(ctx, c.opts.RunTimeout)
	defer cancel()

	threadID, err := c.createThread(ctx)
	if err != nil {
		return "", err
	}
	if err := c.addMessage(ctx, threadID, prompt); err != nil {
		return "", err
	}
	run, err := c.createRun(ctx, threadID)
	if err != nil {
		return "", err
	}

	logger.Info("Assistant run started",
		zap.String("thread_id", threadID),
		zap.String("run_id", run.ID),
		zap.String("assistant_id", c.opts.AssistantID))

	if err := c.waitRun(ctx, threadID, run.ID); err != nil {
		logger.Error("Assistant run did not complete", zap.String("run_id", run.ID), zap.Error(err))
		return "", err
	}

	return c.latestReply(ctx, threadID)
}
