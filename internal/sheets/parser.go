// internal/sheets/parser.go
package sheets

import (
	"encoding/json"
	"strconv"
	"strings"

	commonerrors "estate-match-backend/internal/common/errors"

	"github.com/xeipuuv/gojsonschema"
)

// envelopePrefix is the fixed call-like wrapper the gviz endpoint puts
// around its JSON payload.
const envelopePrefix = "google.visualization.Query.setResponse("

// tableSchema gates the embedded JSON shape before any field access.
const tableSchema = `{
	"type": "object",
	"required": ["table"],
	"properties": {
		"table": {
			"type": "object",
			"required": ["cols", "rows"],
			"properties": {
				"cols": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {"label": {"type": "string"}}
					}
				},
				"rows": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {"c": {"type": ["array", "null"]}}
					}
				}
			}
		}
	}
}`

// Row is one feed row keyed by lower-cased, trimmed column label. Every
// cell is already coerced to its string representation; untyped data never
// flows past this boundary.
type Row map[string]string

type feedResponse struct {
	Table struct {
		Cols []struct {
			Label string `json:"label"`
		} `json:"cols"`
		Rows []struct {
			C []*feedCell `json:"c"`
		} `json:"rows"`
	} `json:"table"`
}

type feedCell struct {
	V interface{} `json:"v"`
}

// ParseFeedResponse strips the gviz envelope and converts the embedded
// table to rows. A missing wrapper or a payload that fails the table
// schema is a MALFORMED_ENVELOPE error.
func ParseFeedResponse(raw []byte) ([]Row, error) {
	text := string(raw)

	idx := strings.Index(text, envelopePrefix)
	if idx < 0 {
		return nil, commonerrors.NewMalformedEnvelopeError("setResponse wrapper not found")
	}

	body := strings.TrimSpace(text[idx+len(envelopePrefix):])
	body = strings.TrimSuffix(body, ";")
	body = strings.TrimSuffix(body, ")")

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(tableSchema),
		gojsonschema.NewStringLoader(body),
	)
	if err != nil {
		return nil, commonerrors.NewMalformedEnvelopeError(err.Error())
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, commonerrors.NewMalformedEnvelopeError(strings.Join(details, "; "))
	}

	var feed feedResponse
	if err := json.Unmarshal([]byte(body), &feed); err != nil {
		return nil, commonerrors.NewMalformedEnvelopeError(err.Error())
	}

	cols := make([]string, len(feed.Table.Cols))
	for i, col := range feed.Table.Cols {
		cols[i] = strings.ToLower(strings.TrimSpace(col.Label))
	}

	rows := make([]Row, 0, len(feed.Table.Rows))
	for _, feedRow := range feed.Table.Rows {
		row := Row{}
		for i, cell := range feedRow.C {
			// A row with fewer cells than declared columns simply
			// leaves those keys absent; downstream defaults apply.
			if i >= len(cols) || cols[i] == "" {
				continue
			}
			row[cols[i]] = cellString(cell)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// cellString coerces a cell value to its string representation; null and
// absent cells become the empty string.
func cellString(cell *feedCell) string {
	if cell == nil || cell.V == nil {
		return ""
	}
	switch v := cell.V.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
