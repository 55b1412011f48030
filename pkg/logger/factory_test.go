package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readium/kotlin-toolkit-sub011/pkg/logger"
)

type operationIDKey struct{}

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output with static attrs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithJSONFormatter(),
			logger.WithAttr(logger.Component("license")),
		)
		log.Info("loan renewed", logger.LicenseID("lic-1"))

		record := decodeRecord(t, &buf)
		assert.Equal(t, "loan renewed", record["msg"])
		assert.Equal(t, "license", record["component"])
		assert.Equal(t, "lic-1", record["license_id"])
	})

	t.Run("text output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithTextFormatter())
		log.Info("entry rewritten", logger.Entry("META-INF/license.lcpl"))

		assert.Contains(t, buf.String(), "msg=\"entry rewritten\"")
		assert.Contains(t, buf.String(), "entry=META-INF/license.lcpl")
	})

	t.Run("default level filters debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))
		log.Debug("hidden")
		assert.Zero(t, buf.Len())

		log = logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelDebug))
		log.Debug("visible")
		assert.NotZero(t, buf.Len())
	})

	t.Run("context value injection", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextValue("operation_id", operationIDKey{}),
		)

		ctx := context.WithValue(context.Background(), operationIDKey{}, "op-42")
		log.InfoContext(ctx, "returning publication")

		record := decodeRecord(t, &buf)
		assert.Equal(t, "op-42", record["operation_id"])
	})

	t.Run("missing context value is omitted", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextValue("operation_id", operationIDKey{}),
		)
		log.InfoContext(context.Background(), "returning publication")

		record := decodeRecord(t, &buf)
		_, ok := record["operation_id"]
		assert.False(t, ok)
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			logger.New(logger.WithFormat("xml"))
		})
	})
}
