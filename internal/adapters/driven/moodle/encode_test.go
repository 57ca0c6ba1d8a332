package moodle

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeParams(t *testing.T) {
	itemID := 42
	tests := []struct {
		name   string
		params map[string]any
		want   url.Values
	}{
		{
			name:   "scalars",
			params: map[string]any{"s": "x", "i": 3, "i64": int64(4), "f": 1.5, "t": true, "n": false},
			want: url.Values{
				"s": {"x"}, "i": {"3"}, "i64": {"4"}, "f": {"1.5"}, "t": {"1"}, "n": {"0"},
			},
		},
		{
			name:   "nil values are omitted",
			params: map[string]any{"a": nil, "p": (*int)(nil)},
			want:   url.Values{},
		},
		{
			name:   "int pointer",
			params: map[string]any{"itemid": &itemID},
			want:   url.Values{"itemid": {"42"}},
		},
		{
			name: "nested editor",
			params: map[string]any{
				"summary": map[string]any{"text": "<p>x</p>", "format": 1, "itemid": 9},
			},
			want: url.Values{
				"summary[text]":   {"<p>x</p>"},
				"summary[format]": {"1"},
				"summary[itemid]": {"9"},
			},
		},
		{
			name: "list of objects",
			params: map[string]any{
				"options": []any{map[string]any{"name": "excludemodules", "value": true}},
			},
			want: url.Values{
				"options[0][name]":  {"excludemodules"},
				"options[0][value]": {"1"},
			},
		},
		{
			name:   "typed slice",
			params: map[string]any{"caps": []string{"a", "b"}},
			want:   url.Values{"caps[0]": {"a"}, "caps[1]": {"b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := url.Values{}
			require.NoError(t, encodeParams(got, tt.params))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeParams_UnsupportedType(t *testing.T) {
	err := encodeParams(url.Values{}, map[string]any{"x": struct{}{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot encode parameter x")
}
