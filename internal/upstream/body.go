package upstream

import (
	"errors"
	"fmt"
	"io"
)

// ErrBodyTooLarge reports an upstream body over the read limit.
var ErrBodyTooLarge = errors.New("upstream response body too large")

// ReadBody reads at most limit bytes from r. A body with more than limit
// bytes is an error rather than a truncated read.
func ReadBody(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, limit)
	}
	return body, nil
}
