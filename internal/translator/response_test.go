package translator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hovertrans/backend/internal/translator"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{
			name: "single segment",
			body: `[[["안녕 세계","hello world",null,null,10]],null,"en"]`,
			want: "안녕 세계",
		},
		{
			name: "multiple segments joined with spaces",
			body: `[[["Bonjour.","Hello.",null],["Au revoir.","Bye.",null]]]`,
			want: "Bonjour. Au revoir.",
		},
		{
			name: "empty fragments skipped",
			body: `[[["",""],["a","b"],[null,"c"],["d","e"]]]`,
			want: "a d",
		},
		{
			name: "comparison operators kept",
			body: `[[["if a<b and c>d then","si a<b et c>d alors"]]]`,
			want: "if a<b and c>d then",
		},
		{
			name: "tag-like text kept",
			body: `[[["use the <input> tag","utilisez la balise <input>"],["x <y> z","x <y> z"]]]`,
			want: "use the <input> tag x <y> z",
		},
		{
			name: "entities not decoded",
			body: `[[["fish &amp; chips","poisson &amp; frites"]]]`,
			want: "fish &amp; chips",
		},
		{
			name:    "null first element",
			body:    `[null,null,"en"]`,
			wantErr: translator.ErrNoTranslation,
		},
		{
			name:    "empty array",
			body:    `[]`,
			wantErr: translator.ErrNoTranslation,
		},
		{
			name:    "no usable fragments",
			body:    `[[[""],[],[1]]]`,
			wantErr: translator.ErrNoTranslation,
		},
		{
			name:    "first element not an array",
			body:    `["oops"]`,
			wantErr: translator.ErrDecode,
		},
		{
			name:    "not json",
			body:    `nope`,
			wantErr: translator.ErrDecode,
		},
		{
			name:    "object instead of array",
			body:    `{"data":1}`,
			wantErr: translator.ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := translator.ParseResponse([]byte(tt.body))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Empty(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
