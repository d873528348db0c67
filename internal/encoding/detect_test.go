package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendy/internal/encoding"
)

func TestNewUTF8Reader(t *testing.T) {
	type testCase struct {
		name        string
		input       []byte
		want        string
		wantCharset string
	}

	tests := []testCase{
		{
			name:        "utf-8 passes through",
			input:       []byte("Descrição;Montante\nCafé;12,50\n"),
			want:        "Descrição;Montante\nCafé;12,50\n",
			wantCharset: encoding.CharsetUTF8,
		},
		{
			name:        "utf-8 bom is stripped",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, "Operação\n"...),
			want:        "Operação\n",
			wantCharset: encoding.CharsetUTF8,
		},
		{
			name:        "utf-16le with bom",
			input:       []byte{0xFF, 0xFE, 'O', 0, 'K', 0, '\n', 0},
			want:        "OK\n",
			wantCharset: encoding.CharsetUTF16LE,
		},
		{
			name: "latin-1 falls back to windows-1252",
			input: []byte{
				'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', ';',
				'M', 'o', 'n', 't', 'a', 'n', 't', 'e', '\n',
			},
			want:        "Descrição;Montante\n",
			wantCharset: encoding.CharsetWindows1252,
		},
		{
			name:        "empty input",
			input:       nil,
			want:        "",
			wantCharset: encoding.CharsetUTF8,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(tc.input))
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			require.NoError(t, err)

			assert.Equal(t, tc.want, string(got))
			assert.Equal(t, tc.wantCharset, charset)
		})
	}
}

func TestNewUTF8Reader_RuneSplitAtSniffBoundary(t *testing.T) {
	// 4095 ASCII bytes followed by "ç" puts half the rune inside the sniffed window.
	input := strings.Repeat("a", 4095) + "ç;1,00\n"

	r, charset, err := encoding.NewUTF8Reader(strings.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	assert.Equal(t, encoding.CharsetUTF8, charset)
	assert.Equal(t, input, string(got))
}
