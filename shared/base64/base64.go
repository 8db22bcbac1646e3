package base64

import (
	b64 "encoding/base64"
	"fmt"
	"strings"
)

func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, ";base64,")

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// DecodePayload strips the data-URI prefix (if any) and decodes the base64
// payload into raw bytes.
func DecodePayload(file string) ([]byte, error) {
	payload := file
	if idx := strings.Index(file, ";base64,"); idx != -1 {
		payload = file[idx+len(";base64,"):]
	}

	data, err := b64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}

	return data, nil
}
