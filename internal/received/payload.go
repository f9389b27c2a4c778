package received

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyPayload covers every body that is not a JSON object with at least
// one key: missing, malformed, non-object, null and {}.
var ErrEmptyPayload = errors.New("JSON body empty or missing")

// ParsePayload decodes a request body into a non-empty Document.
func ParsePayload(body []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyPayload, err)
	}
	if len(doc) == 0 {
		return nil, ErrEmptyPayload
	}
	return doc, nil
}
