package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryLogger(t *testing.T) {
	trace := func(t *testing.T, sql string, err error) map[string]interface{} {
		t.Helper()
		var buf bytes.Buffer
		ql := NewQueryLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

		ctx := ql.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: sql})
		ql.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 1"), Err: err})

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		return entry
	}

	t.Run("sql carried from start to end", func(t *testing.T) {
		entry := trace(t, "SELECT channel_id FROM influencers", nil)

		assert.Equal(t, "SELECT channel_id FROM influencers", entry["sql"])
		assert.Equal(t, "SELECT 1", entry["command_tag"])
		assert.Equal(t, "debug", entry["level"])
	})

	t.Run("failed query logs error", func(t *testing.T) {
		entry := trace(t, "DELETE FROM projects", errors.New("boom"))

		assert.Equal(t, "DELETE FROM projects", entry["sql"])
		assert.Equal(t, "error", entry["level"])
		assert.Equal(t, "Query failed", entry["message"])
	})

	t.Run("end without start", func(t *testing.T) {
		var buf bytes.Buffer
		ql := NewQueryLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
		ql.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})

		assert.Contains(t, buf.String(), `"sql":""`)
	})
}
