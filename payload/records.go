package payload

import (
	"github.com/tidwall/gjson"
)

// Records flattens a field that may be a json encoded string, a single
// object, or an array of either, into one list. Strings holding json are
// parsed, recursively for a string that decodes to another string.
func Records(field gjson.Result) []gjson.Result {
	switch {
	case !field.Exists() || field.Type == gjson.Null:
		return []gjson.Result{}
	case field.IsArray():
		items := field.Array()
		res := make([]gjson.Result, 0, len(items))
		for _, item := range items {
			res = append(res, parseString(item))
		}
		return res
	case field.Type == gjson.String:
		parsed := parseString(field)
		if parsed.Type == gjson.String {
			// not json, or a json string literal
			if parsed.Str == field.Str {
				return []gjson.Result{}
			}
			return Records(parsed)
		}
		if parsed.IsArray() || parsed.IsObject() {
			return Records(parsed)
		}
		return []gjson.Result{}
	case field.IsObject():
		return []gjson.Result{field}
	default:
		return []gjson.Result{}
	}
}

// parseString decodes a string holding json, other values are returned as is.
func parseString(v gjson.Result) gjson.Result {
	if v.Type != gjson.String || !gjson.Valid(v.Str) {
		return v
	}
	return gjson.Parse(v.Str)
}
