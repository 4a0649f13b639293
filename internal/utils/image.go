package utils

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidImagePayload = errors.New("invalid image payload")

// DecodeBase64Image parses a data-URL payload ("data:image/png;base64,...")
// into raw bytes and a content type.
func DecodeBase64Image(payload string) ([]byte, string, error) {
	if !strings.HasPrefix(payload, "data:image") {
		return nil, "", ErrInvalidImagePayload
	}

	parts := strings.SplitN(payload, ";base64,", 2)
	if len(parts) != 2 {
		return nil, "", ErrInvalidImagePayload
	}

	contentType := strings.TrimPrefix(parts[0], "data:")
	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, "", ErrInvalidImagePayload
	}

	return data, contentType, nil
}
