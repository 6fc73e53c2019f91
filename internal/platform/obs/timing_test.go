package obs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"trip-log-service/internal/logging"
)

func TestTimeLogsSuccessAndFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewStructuredLogger(&buf, slog.LevelInfo)

	ctx := logging.WithLogger(context.Background(), logger)
	ctx = context.WithValue(ctx, RequestIDKey, "abc123")

	func() (err error) {
		defer Time(ctx, "geocode")(&err)
		return nil
	}()

	assert.Contains(t, buf.String(), `"op":"geocode"`)
	assert.Contains(t, buf.String(), `"req_id":"abc123"`)
	assert.NotContains(t, buf.String(), `"level":"ERROR"`)

	buf.Reset()
	func() (err error) {
		defer Time(ctx, "route")(&err)
		return errors.New("upstream down")
	}()

	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), `"error":"upstream down"`)
}
