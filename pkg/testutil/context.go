package testutil

import (
	"context"
	"time"

	"stargate/pkg/requestcontext"
)

// FixedContext returns a context carrying a request id and a fixed "now",
// as the request middleware would set them.
func FixedContext(requestID string, now time.Time) context.Context {
	ctx := requestcontext.WithRequestID(context.Background(), requestID)
	return requestcontext.WithTime(ctx, now)
}
