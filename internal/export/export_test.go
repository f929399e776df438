package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportedAt = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func TestCSV_RoundTrip(t *testing.T) {
	body := []byte(`[
		{"id":1,"title":"React Developer","budget":"$500","skills":["React","Node.js"],"notes":null},
		{"id":2,"title":"Say \"hello\"","budget":null,"skills":"Go, SQL","notes":"plain"}
	]`)

	out, err := CSV(body)
	require.NoError(t, err)

	reader := csv.NewReader(bytes.NewReader(out))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two records")

	assert.Equal(t, []string{"id", "title", "budget", "skills", "notes"}, rows[0],
		"header follows the first record's key order")

	assert.Equal(t, []string{"1", "React Developer", "$500", `["React","Node.js"]`, ""}, rows[1])
	assert.Equal(t, []string{"2", `Say "hello"`, "", "Go, SQL", "plain"}, rows[2])
}

func TestCSV_QuotesAreDoubled(t *testing.T) {
	body := []byte(`[{"text":"a \"quoted\" value"}]`)
	out, err := CSV(body)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"a ""quoted"" value"`)
}

func TestCSV_EmptyIsAnError(t *testing.T) {
	_, err := CSV([]byte(`[]`))
	assert.ErrorIs(t, err, ErrNoData)

	_, err = CSV([]byte(`null`))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestCSV_RejectsNonArrayBody(t *testing.T) {
	_, err := CSV([]byte(`{"oops":true}`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoData)
}

func TestJSON_WrapsRows(t *testing.T) {
	body := []byte(`[{"id":1},{"id":2}]`)
	out, err := JSON(body, exportedAt)
	require.NoError(t, err)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(out, &envelope))
	assert.Equal(t, 2, envelope.Total)
	assert.Equal(t, "2025-06-15T10:30:00Z", envelope.ExportedAt)
	assert.JSONEq(t, string(body), string(envelope.Data))
}

func TestJSON_EmptyIsValid(t *testing.T) {
	// Asymmetric with CSV: zero rows is a normal JSON export.
	for _, body := range [][]byte{[]byte(`[]`), []byte(`null`), nil} {
		out, err := JSON(body, exportedAt)
		require.NoError(t, err)

		var envelope Envelope
		require.NoError(t, json.Unmarshal(out, &envelope))
		assert.Equal(t, 0, envelope.Total)
		assert.JSONEq(t, `[]`, string(envelope.Data))
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "upwork-jobs-export-2025-06-15.csv", Filename("csv", exportedAt))
	assert.Equal(t, "upwork-jobs-export-2025-06-15.json", Filename("json", exportedAt))
}
