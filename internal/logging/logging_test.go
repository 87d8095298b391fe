package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeDSN(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "key value",
			in:   "host=localhost port=5432 user=postgres password=1234 dbname=soccer sslmode=disable",
			want: "host=localhost port=5432 user=postgres password=[REDACTED] dbname=soccer sslmode=disable",
		},
		{
			name: "url",
			in:   "postgres://analyst:hunter2@db:5432/soccer",
			want: "postgres://[REDACTED]@db:5432/soccer",
		},
		{name: "sqlite file", in: "datasets/database.sqlite", want: "datasets/database.sqlite"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeDSN(tt.in))
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"local", "production"} {
		l, err := NewLogger(env)
		require.NoError(t, err)
		assert.NotNil(t, l)
	}
}
