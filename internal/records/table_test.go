package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTable(t *testing.T) {
	t.Run("Success_GetSetAndPadding", func(t *testing.T) {
		table, err := NewMemoryTable([]string{"email", "group"})
		require.NoError(t, err)
		require.NoError(t, table.AppendRow([]Value{NewValue("bob@grid.org")}))

		assert.Equal(t, 1, table.Len())
		v, ok := table.Get(0, "email")
		assert.True(t, ok)
		assert.Equal(t, NewValue("bob@grid.org"), v)

		v, ok = table.Get(0, "group")
		assert.True(t, ok)
		assert.True(t, v.IsNull())

		assert.True(t, table.Set(0, "group", NewValue("group42")))
		v, _ = table.Get(0, "group")
		assert.Equal(t, "group42", v.String)
	})

	t.Run("Success_UnknownColumn", func(t *testing.T) {
		table, err := NewMemoryTable([]string{"a"})
		require.NoError(t, err)
		require.NoError(t, table.AppendRow([]Value{NewValue("x")}))

		_, ok := table.Get(0, "b")
		assert.False(t, ok)
		assert.False(t, table.Set(0, "b", NewValue("y")))
		assert.False(t, table.HasColumn("b"))
	})

	t.Run("Success_CloneIsDeep", func(t *testing.T) {
		table, err := NewMemoryTable([]string{"a"})
		require.NoError(t, err)
		require.NoError(t, table.AppendRow([]Value{NewValue("x")}))

		clone := table.Clone()
		clone.Set(0, "a", NewValue("changed"))

		v, _ := table.Get(0, "a")
		assert.Equal(t, "x", v.String)
		c, _ := clone.Get(0, "a")
		assert.Equal(t, "changed", c.String)
	})

	t.Run("Success_AppendMapAddsColumns", func(t *testing.T) {
		table, err := NewMemoryTable([]string{"a"})
		require.NoError(t, err)
		table.AppendMap(map[string]Value{"a": NewValue("1")})
		table.AppendMap(map[string]Value{"b": NewValue("2")})

		assert.Equal(t, []string{"a", "b"}, table.Columns())
		v, _ := table.Get(0, "b")
		assert.True(t, v.IsNull())
		v, _ = table.Get(1, "a")
		assert.True(t, v.IsNull())
	})

	t.Run("Error_DuplicateColumn", func(t *testing.T) {
		_, err := NewMemoryTable([]string{"a", "a"})
		assert.Error(t, err)
	})

	t.Run("Error_RowTooLong", func(t *testing.T) {
		table, err := NewMemoryTable([]string{"a"})
		require.NoError(t, err)
		assert.Error(t, table.AppendRow([]Value{NewValue("1"), NewValue("2")}))
	})
}

func TestValueJSON(t *testing.T) {
	t.Run("Success_NullAndString", func(t *testing.T) {
		var v Value
		require.NoError(t, v.UnmarshalJSON([]byte("null")))
		assert.True(t, v.IsNull())

		require.NoError(t, v.UnmarshalJSON([]byte(`"hi"`)))
		assert.Equal(t, NewValue("hi"), v)

		out, err := Null().MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, "null", string(out))
	})

	t.Run("Success_LiteralPreserved", func(t *testing.T) {
		var v Value
		require.NoError(t, v.UnmarshalJSON([]byte(" 42 ")))
		assert.Equal(t, "42", v.String)
		assert.True(t, v.Equal(NewValue("42")))

		out, err := v.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, "42", string(out))
	})
}
