package tiptap

// getAttrString безопасно извлекает строковый атрибут из map.
func getAttrString(attrs map[string]any, key string) string {
	if attrs == nil {
		return ""
	}
	str, _ := attrs[key].(string)
	return str
}

// getAttrInt безопасно извлекает целочисленный атрибут из map.
func getAttrInt(attrs map[string]any, key string, def int) int {
	if attrs == nil {
		return def
	}
	switch v := attrs[key].(type) {
	// Может быть float64 из JSON
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

func putNonEmpty(attrs map[string]any, key, val string) {
	if val != "" {
		attrs[key] = val
	}
}
