// Package export serializes a full result set to a delimited or structured
// interchange format. It operates on the raw JSON body returned by the record
// store so the CSV header reflects the store's own column order.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoData is returned for a CSV export of zero rows. A JSON export of zero
// rows is valid and yields total 0; the asymmetry is intentional and matches
// the historic endpoint behavior.
var ErrNoData = errors.New("no data to export")

// Envelope wraps a JSON export: the row count, the export timestamp, and the
// rows exactly as the store returned them.
type Envelope struct {
	Total      int             `json:"total"`
	ExportedAt string          `json:"exported_at"`
	Data       json.RawMessage `json:"data"`
}

// CSV renders a JSON array of flat objects as CSV. The header is the key set
// of the first row in its original order; every field is quoted with inner
// double quotes doubled; null renders as an empty string and nested values
// render as their compact JSON text.
func CSV(body []byte) ([]byte, error) {
	rows, err := decodeRows(body)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	headers, err := headerKeys(rows[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read export header: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(strings.Join(headers, ","))

	for _, row := range rows {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(row, &fields); err != nil {
			return nil, fmt.Errorf("failed to decode export row: %w", err)
		}

		cells := make([]string, 0, len(headers))
		for _, h := range headers {
			cells = append(cells, `"`+strings.ReplaceAll(cellText(fields[h]), `"`, `""`)+`"`)
		}
		buf.WriteByte('\n')
		buf.WriteString(strings.Join(cells, ","))
	}
	return buf.Bytes(), nil
}

// JSON wraps the row set in an Envelope. Zero rows is a valid export here.
func JSON(body []byte, now time.Time) ([]byte, error) {
	rows, err := decodeRows(body)
	if err != nil {
		return nil, err
	}

	data := json.RawMessage(body)
	if len(rows) == 0 {
		data = json.RawMessage("[]")
	}

	return json.Marshal(Envelope{
		Total:      len(rows),
		ExportedAt: now.UTC().Format(time.RFC3339),
		Data:       data,
	})
}

// Filename builds the date-stamped attachment filename for a given format.
func Filename(format string, now time.Time) string {
	return fmt.Sprintf("upwork-jobs-export-%s.%s", now.UTC().Format("2006-01-02"), format)
}

func decodeRows(body []byte) ([]json.RawMessage, error) {
	if len(bytes.TrimSpace(body)) == 0 || string(bytes.TrimSpace(body)) == "null" {
		return nil, nil
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("export body is not a JSON array: %w", err)
	}
	return rows, nil
}

// headerKeys walks the first row's tokens to recover its keys in insertion
// order, which a map decode would lose.
func headerKeys(row json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(row))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("export row is not an object")
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in export row", tok)
		}
		keys = append(keys, key)

		var discard json.RawMessage
		if err := dec.Decode(&discard); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// cellText stringifies one field value: null and missing become empty,
// strings are unquoted, and anything structured stays compact JSON.
func cellText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		var compact bytes.Buffer
		if err := json.Compact(&compact, trimmed); err == nil {
			return compact.String()
		}
	}
	return string(trimmed)
}
