package webhook

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractReply(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"response key", `{"response":"Meeting booked"}`, "Meeting booked"},
		{"message key", `{"message":"Done"}`, "Done"},
		{"output key", `{"output":"Out"}`, "Out"},
		{"response beats message", `{"message":"second","response":"first"}`, "first"},
		{"message beats output", `{"output":"third","message":"second"}`, "second"},
		{"empty string falls through", `{"response":"","message":"fallback"}`, "fallback"},
		{"null falls through", `{"response":null,"output":"x"}`, "x"},
		{"false and zero fall through", `{"response":false,"message":0,"output":"y"}`, "y"},
		{"non-string value rendered as JSON", `{"output":{"slots":[1, 2]}}`, `{"slots":[1,2]}`},
		{"number value", `{"response":42}`, "42"},
		{"no known keys", `{"foo":"bar"}`, `{"foo":"bar"}`},
		{"no known keys compacted", "{\n  \"foo\": \"bar\"\n}\n", `{"foo":"bar"}`},
		{"all known keys falsy", `{"response":"","message":null}`, `{"response":"","message":null}`},
		{"array body", `[{"response":"nested"}]`, `[{"response":"nested"}]`},
		{"string body", `"hello"`, `"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractReply([]byte(tt.body))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestExtractReplyInvalidJSON(t *testing.T) {
	for _, body := range []string{"", "not json", `{"response":`} {
		_, err := ExtractReply([]byte(body))
		require.Error(t, err, "body %q", body)
	}
}
