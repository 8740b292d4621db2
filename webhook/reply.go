package webhook

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// ReplyKeys are probed in order; the first truthy one becomes the reply.
// The order is part of the contract with existing automation workflows.
var ReplyKeys = []string{"response", "message", "output"}

// ExtractReply turns a 2xx response body into the assistant's reply text.
//
// The first of ReplyKeys holding a truthy value wins: strings are returned
// verbatim, any other value as compact JSON. When no key qualifies, or the
// body is not an object, the whole body is returned as compact JSON.
func ExtractReply(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", errors.New("invalid JSON in webhook response")
	}

	parsed := gjson.ParseBytes(body)
	if parsed.IsObject() {
		for _, key := range ReplyKeys {
			value := parsed.Get(key)
			if !truthy(value) {
				continue
			}
			if value.Type == gjson.String {
				return value.Str, nil
			}
			return compact(value.Raw), nil
		}
	}

	return compact(string(body)), nil
}

// truthy mirrors JavaScript truthiness for decoded JSON values.
func truthy(v gjson.Result) bool {
	if !v.Exists() {
		return false
	}
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	default:
		return true
	}
}

func compact(raw string) string {
	return string(pretty.Ugly([]byte(raw)))
}
