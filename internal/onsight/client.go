package onsight

//go:generate mockgen -source=client.go -destination=mocks/onsight_mock.go -package=mocks HTTPDoer,TokenSource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"onsightnow/internal/onsight/models"
	"onsightnow/internal/platform/logger"
	"onsightnow/internal/platform/metrics"
	"onsightnow/internal/platform/tracer"
	dErrors "onsightnow/pkg/domain-errors"
)

// Default service endpoints, used when Config leaves one empty.
const (
	DefaultTokenEndpoint    = "https://login.onsightnow.com/connect/token"
	DefaultMeetingsEndpoint = "https://api.onsightnow.com/meetings"
	DefaultIdaEndpoint      = "https://api.onsightnow.com/ida/chat"
)

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource obtains a bearer token for one API call.
type TokenSource interface {
	GetToken(ctx context.Context, clientID, clientSecret, endpoint string) (string, error)
}

// Config carries the credentials and endpoints of one Onsight NOW tenant.
type Config struct {
	ClientID         string
	ClientSecret     string
	TokenEndpoint    string
	MeetingsEndpoint string
	IdaEndpoint      string
}

func (c Config) withDefaults() Config {
	if c.TokenEndpoint == "" {
		c.TokenEndpoint = DefaultTokenEndpoint
	}
	if c.MeetingsEndpoint == "" {
		c.MeetingsEndpoint = DefaultMeetingsEndpoint
	}
	if c.IdaEndpoint == "" {
		c.IdaEndpoint = DefaultIdaEndpoint
	}
	return c
}

// Client calls the meetings and Ida endpoints. Each call requests its own token.
type Client struct {
	cfg     Config
	tokens  TokenSource
	http    HTTPDoer
	logger  *slog.Logger
	tracer  tracer.Tracer
	metrics *metrics.Metrics
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets the client used for API calls.
func WithHTTPClient(d HTTPDoer) Option {
	return func(c *Client) { c.http = d }
}

// WithTokenSource replaces the default TokenProvider.
func WithTokenSource(t TokenSource) Option {
	return func(c *Client) { c.tokens = t }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a Client for cfg. Empty endpoints take their defaults.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:    cfg.withDefaults(),
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: logger.Discard(),
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tokens == nil {
		c.tokens = NewTokenProvider(
			WithTokenLogger(c.logger),
			WithTokenTracer(c.tracer),
			WithTokenMetrics(c.metrics),
		)
	}
	return c
}

// Config returns the effective configuration.
func (c *Client) Config() Config { return c.cfg }

// ScheduleMeeting creates a meeting and returns its join URL. A non-success
// status from the meetings endpoint is not an error: the result is "".
// Token failures still propagate as auth_failed.
func (c *Client) ScheduleMeeting(ctx context.Context, req *models.MeetingRequest) (joinURL string, err error) {
	ctx, span := c.tracer.Start(ctx, tracer.SpanMeeting,
		tracer.Int("participants", len(req.Participants.Emails)),
	)
	defer func() { span.End(err) }()

	status, body, err := c.post(ctx, "meeting", c.cfg.MeetingsEndpoint, req)
	if err != nil {
		c.metrics.IncrementMeetingRequest(metrics.OutcomeFailure)
		return "", err
	}
	span.SetAttributes(tracer.Int(tracer.AttrStatusCode, status))

	if !success(status) {
		c.metrics.IncrementMeetingRequest(metrics.OutcomeSoftFail)
		span.SetAttributes(tracer.Bool(tracer.AttrSoftFail, true))
		c.logger.WarnContext(ctx, "meeting creation rejected", "status", status)
		return "", nil
	}

	var resp models.CreateMeetingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.metrics.IncrementMeetingRequest(metrics.OutcomeFailure)
		return "", dErrors.Wrap(err, dErrors.CodeService, "failed to parse meeting response")
	}
	c.metrics.IncrementMeetingRequest(metrics.OutcomeSuccess)
	c.logger.InfoContext(ctx, "meeting created",
		"meeting_id", resp.ID.String(),
		"participants", len(resp.Participants),
	)
	return resp.JoinURL, nil
}

// ChatWithAssistant sends the conversation to Ida. Any non-success status is
// service_failed.
func (c *Client) ChatWithAssistant(ctx context.Context, req *models.ChatRequest) (out *models.ChatResponse, err error) {
	ctx, span := c.tracer.Start(ctx, tracer.SpanChat,
		tracer.Int("history", len(req.ChatHistory)),
	)
	defer func() {
		if err != nil {
			c.metrics.IncrementChatRequest(metrics.OutcomeFailure)
		} else {
			c.metrics.IncrementChatRequest(metrics.OutcomeSuccess)
		}
		span.End(err)
	}()

	status, body, err := c.post(ctx, "chat", c.cfg.IdaEndpoint, req)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(tracer.Int(tracer.AttrStatusCode, status))

	if !success(status) {
		c.logger.WarnContext(ctx, "ida chat rejected", "status", status)
		return nil, dErrors.New(dErrors.CodeService, fmt.Sprintf("ida chat returned status %d", status))
	}

	var resp models.ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeService, "failed to parse chat response")
	}
	if resp.Variables == nil {
		resp.Variables = []models.Variable{}
	}
	return &resp, nil
}

// post obtains a token, then sends payload as JSON with bearer auth. It
// returns the status and raw body for the caller to interpret.
func (c *Client) post(ctx context.Context, operation, endpoint string, payload any) (int, []byte, error) {
	token, err := c.tokens.GetToken(ctx, c.cfg.ClientID, c.cfg.ClientSecret, c.cfg.TokenEndpoint)
	if err != nil {
		return 0, nil, err
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return 0, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	c.metrics.ObserveOutbound(operation, time.Since(start))
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return 0, nil, dErrors.Wrap(err, dErrors.CodeTimeout, operation+" request timeout")
		}
		return 0, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to execute "+operation+" request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read response body")
	}
	return resp.StatusCode, body, nil
}

func success(status int) bool {
	return status >= 200 && status < 300
}
