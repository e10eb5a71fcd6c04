package utilityapi

import (
	"net/http"

	"github.com/bnema/utilityapi-cli/internal/domain"
)

const maxErrorBodyBytes = 512

// checkStatus maps 4xx and 5xx responses onto the domain error taxonomy.
// Redirects are followed by net/http before a status gets here.
func checkStatus(method string, path string, statusCode int, body []byte) error {
	if statusCode < http.StatusBadRequest {
		return nil
	}

	if len(body) > maxErrorBodyBytes {
		body = body[:maxErrorBodyBytes]
	}
	return &domain.HTTPError{
		StatusCode: statusCode,
		Method:     method,
		Path:       path,
		Body:       string(body),
	}
}
