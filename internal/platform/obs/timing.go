package obs

import (
	"context"
	"log/slog"
	"time"

	"trip-log-service/internal/logging"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Time logs the duration of the named operation when the returned func runs.
// Pass the address of the caller's named error so failures are logged with the timing.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)
	logger := logging.FromContext(ctx)

	return func(errp *error) {
		attrs := []slog.Attr{
			slog.String("req_id", reqID),
			slog.String("op", name),
			slog.Int64("dur_ms", time.Since(start).Milliseconds()),
		}

		if errp != nil && *errp != nil {
			logging.LogError(logger, "op failed", *errp, attrs...)
			return
		}
		logging.LogOperation(logger, "op", attrs...)
	}
}
