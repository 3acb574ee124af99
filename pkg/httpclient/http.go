package httpclient

import "context"

// BaseResponse carries the transport-level outcome of a request alongside
// the decoded result.
type BaseResponse struct {
	StatusCode int
	Body       []byte
}

// HTTPClient abstracts the outbound HTTP surface so repositories can be
// tested against a stub.
type HTTPClient interface {
	Get(ctx context.Context, endpoint string, queryParams, headers map[string]string, result interface{}) (*BaseResponse, error)
}
