package communet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_String(t *testing.T) {
	tests := []struct {
		name     string
		query    *Query
		expected string
	}{
		{
			name:     "bare collection",
			query:    NewQuery("messages"),
			expected: "SELECT * FROM messages",
		},
		{
			name:     "selected fields",
			query:    NewQuery("boards").Select("id", "title"),
			expected: "SELECT id, title FROM boards",
		},
		{
			name:     "single where",
			query:    NewQuery("users").Where("login", "=", "jsmith"),
			expected: "SELECT * FROM users WHERE login = 'jsmith'",
		},
		{
			name: "and chain",
			query: NewQuery("messages").
				Where("board.id", "=", "product-news").
				Where("depth", "=", 0),
			expected: "SELECT * FROM messages WHERE board.id = 'product-news' AND depth = 0",
		},
		{
			name: "or clause",
			query: NewQuery("messages").
				Where("board.id", "=", "a").
				OrWhere("board.id", "=", "b"),
			expected: "SELECT * FROM messages WHERE board.id = 'a' OR board.id = 'b'",
		},
		{
			name:     "order ascending",
			query:    NewQuery("boards").OrderBy("title", false),
			expected: "SELECT * FROM boards ORDER BY title ASC",
		},
		{
			name:     "order descending with limit",
			query:    NewQuery("messages").OrderBy("post_time", true).Limit(5),
			expected: "SELECT * FROM messages ORDER BY post_time DESC LIMIT 5",
		},
		{
			name:     "offset",
			query:    NewQuery("messages").Limit(25).Offset(50),
			expected: "SELECT * FROM messages LIMIT 25 OFFSET 50",
		},
		{
			name:     "cursor",
			query:    NewQuery("messages").Limit(25).Cursor("AAAB=="),
			expected: "SELECT * FROM messages LIMIT 25 CURSOR 'AAAB=='",
		},
		{
			name:     "in list",
			query:    NewQuery("messages").Where("board.id", "IN", []string{"a", "b"}),
			expected: "SELECT * FROM messages WHERE board.id IN ('a', 'b')",
		},
		{
			name:     "embedded quote escaped",
			query:    NewQuery("boards").Where("title", "=", "Bob's Board"),
			expected: "SELECT * FROM boards WHERE title = 'Bob\\'s Board'",
		},
		{
			name: "everything",
			query: NewQuery("messages").
				Select("id", "subject").
				Where("board.id", "=", "product-news").
				OrderBy("post_time", true).
				Limit(5),
			expected: "SELECT id, subject FROM messages WHERE board.id = 'product-news' ORDER BY post_time DESC LIMIT 5",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.query.String())
		})
	}
}

func TestQuery_Validate(t *testing.T) {
	require.NoError(t, NewQuery("messages").Validate())
	require.ErrorIs(t, NewQuery("").Validate(), ErrQueryCollectionRequired)
}

func TestFormatLiQLValue(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected string
	}{
		{"string", "hello", "'hello'"},
		{"string with quote", "it's", "'it\\'s'"},
		{"int", 42, "42"},
		{"int64", int64(9000000000), "9000000000"},
		{"float", 2.5, "2.5"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"string slice", []string{"a", "b"}, "('a', 'b')"},
		{"mixed slice", []interface{}{"a", 1}, "('a', 1)"},
		{"fallback stringifies", struct{}{}, "'{}'"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, FormatLiQLValue(testCase.value))
		})
	}
}
