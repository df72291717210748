// internal/sheets/parser_test.go
package sheets

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "estate-match-backend/internal/common/errors"
)

func wrapEnvelope(payload string) []byte {
	return []byte(fmt.Sprintf("/*O_o*/\ngoogle.visualization.Query.setResponse(%s);", payload))
}

func TestParseFeedResponse(t *testing.T) {
	t.Run("parses rows keyed by lower-cased labels", func(t *testing.T) {
		payload := `{"table":{"cols":[{"label":" ID "},{"label":"Title"},{"label":"Price"}],` +
			`"rows":[{"c":[{"v":"p1"},{"v":"Lakeside Cabin"},{"v":1200}]}]}}`

		rows, err := ParseFeedResponse(wrapEnvelope(payload))

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "p1", rows[0]["id"])
		assert.Equal(t, "Lakeside Cabin", rows[0]["title"])
		assert.Equal(t, "1200", rows[0]["price"])
	})

	t.Run("null and missing cells become empty strings", func(t *testing.T) {
		payload := `{"table":{"cols":[{"label":"id"},{"label":"title"},{"label":"city"}],` +
			`"rows":[{"c":[{"v":"p1"},null]}]}}`

		rows, err := ParseFeedResponse(wrapEnvelope(payload))

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "p1", rows[0]["id"])
		assert.Equal(t, "", rows[0]["title"])
		_, ok := rows[0]["city"]
		assert.False(t, ok)
	})

	t.Run("boolean cells coerce to true/false strings", func(t *testing.T) {
		payload := `{"table":{"cols":[{"label":"id"},{"label":"featured"}],` +
			`"rows":[{"c":[{"v":"p1"},{"v":true}]}]}}`

		rows, err := ParseFeedResponse(wrapEnvelope(payload))

		require.NoError(t, err)
		assert.Equal(t, "true", rows[0]["featured"])
	})

	t.Run("extra cells beyond declared columns are ignored", func(t *testing.T) {
		payload := `{"table":{"cols":[{"label":"id"}],` +
			`"rows":[{"c":[{"v":"p1"},{"v":"surplus"}]}]}}`

		rows, err := ParseFeedResponse(wrapEnvelope(payload))

		require.NoError(t, err)
		assert.Equal(t, Row{"id": "p1"}, rows[0])
	})

	t.Run("empty rows array yields zero rows", func(t *testing.T) {
		payload := `{"table":{"cols":[{"label":"id"}],"rows":[]}}`

		rows, err := ParseFeedResponse(wrapEnvelope(payload))

		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("missing wrapper is a malformed envelope", func(t *testing.T) {
		_, err := ParseFeedResponse([]byte(`{"table":{"cols":[],"rows":[]}}`))

		require.Error(t, err)
		assert.Equal(t, commonerrors.ErrCodeMalformedEnvelope, commonerrors.CodeOf(err))
	})

	t.Run("HTML error page is a malformed envelope", func(t *testing.T) {
		_, err := ParseFeedResponse([]byte(`<html><body>Sign in required</body></html>`))

		require.Error(t, err)
		assert.Equal(t, commonerrors.ErrCodeMalformedEnvelope, commonerrors.CodeOf(err))
	})

	t.Run("payload without table fails the schema gate", func(t *testing.T) {
		_, err := ParseFeedResponse(wrapEnvelope(`{"status":"error"}`))

		require.Error(t, err)
		assert.Equal(t, commonerrors.ErrCodeMalformedEnvelope, commonerrors.CodeOf(err))
	})

	t.Run("table missing cols fails the schema gate", func(t *testing.T) {
		_, err := ParseFeedResponse(wrapEnvelope(`{"table":{"rows":[]}}`))

		require.Error(t, err)
		assert.Equal(t, commonerrors.ErrCodeMalformedEnvelope, commonerrors.CodeOf(err))
	})
}
