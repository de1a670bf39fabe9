package config

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cgsdk/cppsdkgen/client"
	"github.com/cgsdk/cppsdkgen/model"
)

// LoadModel はローカルのダンプを読むか、エンドポイントからダンプを取得する。
func (c *Config) LoadModel(ctx context.Context) (*model.SDK, error) {
	switch {
	case c.Model != "":
		sdk, err := model.Load(c.Model)
		if err != nil {
			return nil, fmt.Errorf("load local model failed: %w", err)
		}
		return sdk, nil
	case c.Endpoint != nil:
		httpClient := c.Endpoint.Client
		if httpClient == nil {
			httpClient = http.DefaultClient
		}
		sdk, err := fetchModel(ctx, httpClient, c.Endpoint.URL, c.Endpoint.Headers)
		if err != nil {
			return nil, fmt.Errorf("fetch model failed: %w", err)
		}
		return sdk, nil
	default:
		return nil, errors.New("neither 'model' nor 'endpoint' specified. Use model to load from a local dump, use endpoint to fetch from a running dumper")
	}
}

func fetchModel(ctx context.Context, httpClient *http.Client, endpoint string, header http.Header) (*model.SDK, error) {
	c := client.NewClient(endpoint, client.WithHTTPClient(httpClient), client.WithHTTPHeader(header))

	sdk, err := c.FetchSDK(ctx)
	if err != nil {
		return nil, err
	}

	if len(sdk.Packages) == 0 {
		return nil, errors.New("dump contains no packages")
	}

	return sdk, nil
}
