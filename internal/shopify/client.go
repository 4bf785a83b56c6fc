package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const DefaultAPIVersion = "2024-10"

// Client talks to the Shopify Storefront GraphQL API with a public
// storefront access token.
type Client struct {
	domain     string
	token      string
	apiVersion string
	endpoint   string
	httpc      *http.Client
	logger     *zap.Logger
}

type Option func(*Client)

func WithAPIVersion(version string) Option {
	return func(c *Client) { c.apiVersion = version }
}

func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithEndpoint overrides the derived graphql.json URL, used by tests.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

func New(domain, token string, opts ...Option) (*Client, error) {
	if domain == "" {
		return nil, fmt.Errorf("domain is empty")
	}
	if token == "" {
		return nil, fmt.Errorf("token is empty")
	}

	c := &Client{
		domain:     domain,
		token:      token,
		apiVersion: DefaultAPIVersion,
		httpc:      &http.Client{},
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.endpoint == "" {
		c.endpoint = fmt.Sprintf("https://%s/api/%s/graphql.json", c.domain, c.apiVersion)
	}

	return c, nil
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

// do posts one GraphQL document and decodes the data envelope into out.
// Anything below the application level, transport failures, non-success
// statuses, undecodable bodies, top-level GraphQL errors, comes back as a
// TransportError.
func (c *Client) do(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("httpc.Do: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		c.logger.Warn("storefront API returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", payload))

		return &TransportError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []gqlError      `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &TransportError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("decode response: %w", err),
		}
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, gqlErr := range envelope.Errors {
			messages = append(messages, gqlErr.Message)
		}

		return &TransportError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("graphql errors: %s", strings.Join(messages, "; ")),
		}
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return &TransportError{
				Status: resp.StatusCode,
				Err:    fmt.Errorf("decode data: %w", err),
			}
		}
	}

	return nil
}
