package records

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV(t *testing.T) {
	t.Run("Success_ReadWithMissingCells", func(t *testing.T) {
		input := "email,group,note\nbob@grid.org,group42,\n,,hello\n"
		table, err := ReadCSV(strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, []string{"email", "group", "note"}, table.Columns())
		assert.Equal(t, 2, table.Len())

		v, _ := table.Get(0, "note")
		assert.True(t, v.IsNull())
		v, _ = table.Get(1, "email")
		assert.True(t, v.IsNull())
		v, _ = table.Get(1, "note")
		assert.Equal(t, "hello", v.String)
	})

	t.Run("Success_WriteRoundTrip", func(t *testing.T) {
		input := "email,group\nbob@grid.org,\"a,b\"\n,x\n"
		table, err := ReadCSV(strings.NewReader(input))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, table))
		assert.Equal(t, input, buf.String())
	})

	t.Run("Success_EmptyInput", func(t *testing.T) {
		table, err := ReadCSV(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, 0, table.Len())
		assert.Empty(t, table.Columns())
	})

	t.Run("Error_TooManyFields", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("a\n1,2\n"))
		assert.Error(t, err)
	})
}

func TestJSONLines(t *testing.T) {
	t.Run("Success_ReadUnionOfKeys", func(t *testing.T) {
		input := `{"email":"bob@grid.org","age":42}
{"group":"group42","email":null}
`
		table, err := ReadJSONLines(strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, []string{"email", "age", "group"}, table.Columns())
		assert.Equal(t, 2, table.Len())

		v, _ := table.Get(0, "age")
		assert.Equal(t, "42", v.String)
		v, _ = table.Get(0, "group")
		assert.True(t, v.IsNull())
		v, _ = table.Get(1, "email")
		assert.True(t, v.IsNull())
	})

	t.Run("Success_WriteKeepsLiterals", func(t *testing.T) {
		input := `{"email":"bob@grid.org","age":42,"flag":true}` + "\n"
		table, err := ReadJSONLines(strings.NewReader(input))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, WriteJSONLines(&buf, table))
		assert.Equal(t, input, buf.String())
	})

	t.Run("Success_EncodeRowMissingAsNull", func(t *testing.T) {
		table, err := NewMemoryTable([]string{"email", "group"})
		require.NoError(t, err)
		require.NoError(t, table.AppendRow([]Value{NewValue("bob@grid.org")}))

		encoded, err := EncodeRow(table, 0)
		require.NoError(t, err)
		assert.JSONEq(t, `{"email":"bob@grid.org","group":null}`, string(encoded))
	})

	t.Run("Error_NotAnObject", func(t *testing.T) {
		_, err := ReadJSONLines(strings.NewReader("[1,2]\n"))
		assert.Error(t, err)
	})

	t.Run("Error_Malformed", func(t *testing.T) {
		_, err := ReadJSONLines(strings.NewReader(`{"a":`))
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("Error_TruncatedAfterCompleteRecord", func(t *testing.T) {
		input := "{\"email\":\"a@x.org\"}\n{\"email\":\"bob@grid.org\",\"group\":"
		table, err := ReadJSONLines(strings.NewReader(input))
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.ErrorContains(t, err, "record 2")
		assert.Nil(t, table)
	})

	t.Run("Error_TruncatedAfterOpeningBrace", func(t *testing.T) {
		_, err := ReadJSONLines(strings.NewReader("{\"email\":\"a@x.org\"}\n{"))
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("Success_TrailingWhitespaceIsCleanEnd", func(t *testing.T) {
		table, err := ReadJSONLines(strings.NewReader("{\"email\":\"a@x.org\"}\n\n  \n"))
		require.NoError(t, err)
		assert.Equal(t, 1, table.Len())
	})
}

func TestFormat(t *testing.T) {
	t.Run("Success_FromPath", func(t *testing.T) {
		f, err := FormatFromPath("/tmp/data.CSV")
		require.NoError(t, err)
		assert.Equal(t, FormatCSV, f)

		f, err = FormatFromPath("events.ndjson")
		require.NoError(t, err)
		assert.Equal(t, FormatJSONL, f)
	})

	t.Run("Error_Unknown", func(t *testing.T) {
		_, err := FormatFromPath("data.parquet")
		assert.ErrorIs(t, err, ErrUnknownFormat)

		_, err = FormatFromPath("data")
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})

	t.Run("Success_ReadWriteDispatch", func(t *testing.T) {
		table, err := Read(strings.NewReader("a\n1\n"), FormatCSV)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatJSONL, table))
		assert.Equal(t, "{\"a\":\"1\"}\n", buf.String())
	})
}
