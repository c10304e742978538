package payflow

import (
	"fmt"
	"strings"

	"github.com/cassiomorais/payflow/internal/domain/errors"
)

// Params is a single transaction request: field name to scalar value.
// Field names are case-insensitive; the codec upper-cases them on the wire.
type Params map[string]string

// Response is a decoded gateway response with lower-cased field names.
type Response map[string]string

// Encode renders params as ampersand-joined UPPERCASE(name)=value tokens.
// The protocol has no escaping, so values containing the "&" or "="
// delimiters cannot be represented and are rejected here instead of
// producing a corrupt request. Field order on the wire is unspecified.
func Encode(params Params) (string, error) {
	if len(params) == 0 {
		return "", errors.NewValidationError("parameters", "cannot be empty")
	}

	values := make([]string, 0, len(params))
	for key, value := range params {
		if strings.ContainsAny(key, "&=") {
			return "", errors.NewValidationError(key, "field name contains a protocol delimiter")
		}
		if strings.ContainsAny(value, "&=") {
			return "", errors.NewValidationError(key, "value contains a protocol delimiter")
		}
		values = append(values, strings.ToUpper(key)+"="+value)
	}

	return strings.Join(values, "&"), nil
}

// Decode parses a raw response body into a Response. Each token must
// contain an "=" separator; the key is everything before the first one.
func Decode(body string) (Response, error) {
	if body == "" {
		return nil, fmt.Errorf("empty response body: %w", errors.ErrMalformedResponse)
	}

	result := make(Response)
	for i, token := range strings.Split(body, "&") {
		key, value, found := strings.Cut(token, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("response token %d has no separator: %w", i, errors.ErrMalformedResponse)
		}
		result[strings.ToLower(key)] = value
	}

	return result, nil
}
