package common

// StringArg extracts a string argument, returning "" when absent or of
// the wrong type.
func StringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

// BoolArg extracts a boolean argument, returning false when absent.
func BoolArg(args map[string]interface{}, key string) bool {
	v, _ := args[key].(bool)
	return v
}

// IntArg extracts an integer argument. JSON numbers decode as float64,
// so both forms are accepted. Returns (0, false) when absent.
func IntArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

// StringSliceArg extracts a list-of-strings argument. Non-string
// elements are skipped.
func StringSliceArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
