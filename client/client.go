package client

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/cgsdk/cppsdkgen/model"
)

// Client は稼働中のダンパーからエンティティダンプを取得する。
type Client struct {
	client   *http.Client
	header   http.Header
	endpoint string
}

// NewClient creates a new http client wrapper.
func NewClient(endpoint string, options ...Option) *Client {
	client := &Client{
		endpoint: endpoint,
		client:   http.DefaultClient,
	}
	for _, option := range options {
		option(client)
	}

	return client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.client = httpClient
	}
}

func WithHTTPHeader(header http.Header) Option {
	return func(c *Client) {
		c.header = header
	}
}

// FetchSDK はエンドポイントからダンプを取得してデコードする。
// レスポンスの Content-Type が MessagePack であれば MessagePack として、それ以外は JSON として読む。
func (c *Client) FetchSDK(ctx context.Context) (*model.SDK, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range c.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/msgpack, application/json;q=0.9")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("http status %d: %s", resp.StatusCode, body)
	}

	sdk, err := model.Decode(resp.Body, formatFromContentType(resp.Header.Get("Content-Type")))
	if err != nil {
		return nil, err
	}

	return sdk, nil
}

func formatFromContentType(contentType string) model.Format {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return model.FormatJSON
	}

	switch mediaType {
	case "application/msgpack", "application/x-msgpack", "application/vnd.msgpack":
		return model.FormatMsgpack
	default:
		return model.FormatJSON
	}
}
