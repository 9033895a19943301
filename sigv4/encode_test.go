package sigv4

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"unreserved passthrough", "AZaz09-._~", "AZaz09-._~"},
		{"empty", "", ""},
		{"space", "a b", "a%20b"},
		{"slash escaped", "a/b", "a%2Fb"},
		{"plus escaped", "1+2", "1%2B2"},
		{"equals and ampersand", "a=b&c", "a%3Db%26c"},
		{"percent escaped", "100%", "100%25"},
		{"utf8 two byte", "café", "caf%C3%A9"},
		{"utf8 three byte", "€", "%E2%82%AC"},
		{"uppercase hex", "\x1f", "%1F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, EncodeQuery(tt.input))
		})
	}
}

func TestEncodePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"slash preserved", "some/key.jpg", "some/key.jpg"},
		{"segments escaped", "a b/c d", "a%20b/c%20d"},
		{"leading slash", "/test.txt", "/test.txt"},
		{"utf8", "dück/cat.jpg", "d%C3%BCck/cat.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, EncodePath(tt.input))
		})
	}
}
