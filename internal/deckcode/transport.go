package deckcode

import (
	"encoding/base64"
	"fmt"
	"strings"
)

var (
	urlSafe   = strings.NewReplacer("/", "-", "=", "_")
	urlUnsafe = strings.NewReplacer("-", "/", "_", "=")
)

// FormatToken renders a payload as a deck code.
func FormatToken(payload []byte) string {
	return Prefix + urlSafe.Replace(base64.StdEncoding.EncodeToString(payload))
}

// ParseToken reverses FormatToken. The "ADC" prefix is optional.
func ParseToken(token string) ([]byte, error) {
	token = strings.TrimPrefix(strings.TrimSpace(token), Prefix)
	payload, err := base64.StdEncoding.DecodeString(urlUnsafe.Replace(token))
	if err != nil {
		return nil, &DecodeError{Offset: -1, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	return payload, nil
}
