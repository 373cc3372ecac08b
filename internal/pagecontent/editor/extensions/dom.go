package extensions

import (
	"strings"

	"golang.org/x/net/html"
)

func getAttrValue(key string, attrs []html.Attribute) string {
	val, _ := lookupAttr(key, attrs)
	return val
}

func lookupAttr(key string, attrs []html.Attribute) (string, bool) {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func firstChildElement(el *html.Node, tag string) *html.Node {
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
	}
	return nil
}

// parseStyleAttr парсит CSS style строку в map key-value пар.
// Например: "float: left; max-width: 40%" -> {"float": "left", "max-width": "40%"}
func parseStyleAttr(style string) map[string]string {
	result := make(map[string]string)
	for part := range strings.SplitSeq(style, ";") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(kv[0]))
		value := strings.ToLower(strings.TrimSpace(kv[1]))
		if key != "" && value != "" {
			result[key] = value
		}
	}
	return result
}
