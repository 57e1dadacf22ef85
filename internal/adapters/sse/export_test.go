// export_test.go exports private state for white-box testing.
package sse

import "time"

// RetryExported returns the reconnection delay the Reader last parsed.
func (r *Reader) RetryExported() time.Duration {
	return r.retry
}
