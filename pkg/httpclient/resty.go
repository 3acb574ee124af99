package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

type RestyClient struct {
	client *resty.Client
}

// New builds a resty-backed client bound to a base URL.
func New(baseURL string, timeout time.Duration) HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &RestyClient{client: client}
}

// Get performs a GET with optional query params and headers, decoding the
// JSON body into result when one is given.
func (rc *RestyClient) Get(ctx context.Context, endpoint string, queryParams, headers map[string]string, result interface{}) (*BaseResponse, error) {
	req := rc.client.R().SetContext(ctx)
	if result != nil {
		req.SetResult(result)
	}
	if queryParams != nil {
		req.SetQueryParams(queryParams)
	}
	if headers != nil {
		req.SetHeaders(headers)
	}

	resp, err := req.Get(endpoint)
	if err != nil {
		return nil, err
	}

	return &BaseResponse{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}, nil
}
