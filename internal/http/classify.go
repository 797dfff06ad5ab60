package http

import (
	"net/http"

	"github.com/fivetwenty-io/gcs-client/pkg/gcs"
)

// classify turns a received response into a result. 2xx is success; any other
// status is an *gcs.APIError when the body is an error envelope and an
// *gcs.HTTPStatusError otherwise.
func classify(method, targetURL string, status int, header http.Header, body []byte) (*gcs.RawResponse, error) {
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return &gcs.RawResponse{StatusCode: status, Header: header, Body: body}, nil
	}

	apiErr, err := gcs.ParseResponseError(body)
	if err != nil {
		return nil, &gcs.HTTPStatusError{
			Method:     method,
			URL:        targetURL,
			StatusCode: status,
			Body:       body,
		}
	}

	apiErr.StatusCode = status
	apiErr.Method = method
	apiErr.URL = targetURL

	return nil, apiErr
}
