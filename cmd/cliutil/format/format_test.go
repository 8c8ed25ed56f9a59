package format

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/storacha/rangestream/pkg/store/catalog"
)

func TestParseOutputFormat(t *testing.T) {
	f, err := ParseOutputFormat("")
	require.NoError(t, err)
	require.Equal(t, TableFormat, f)

	f, err = ParseOutputFormat("json")
	require.NoError(t, err)
	require.Equal(t, JSONFormat, f)

	_, err = ParseOutputFormat("yaml")
	require.Error(t, err)
}

func TestFormatEntries(t *testing.T) {
	entries := []catalog.Entry{
		{ID: "song.mp3", Key: "song.mp3", Size: 2048, MimeType: "audio/mpeg", Created: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(JSONFormat, &buf).Format(entries))

		var out []catalog.Entry
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		require.Equal(t, entries[0].ID, out[0].ID)
		require.Equal(t, entries[0].Size, out[0].Size)
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(TableFormat, &buf).Format(entries))
		require.Contains(t, buf.String(), "song.mp3")
		require.Contains(t, buf.String(), "2.0 KiB")
		require.Contains(t, buf.String(), "audio/mpeg")
	})

	t.Run("empty table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(TableFormat, &buf).Format([]catalog.Entry{}))
		require.Contains(t, buf.String(), "No media found")
	})

	t.Run("unsupported", func(t *testing.T) {
		require.Error(t, NewFormatter(TableFormat, &bytes.Buffer{}).Format(42))
	})
}
