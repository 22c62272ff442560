package source

import (
	"fmt"
	"strconv"
	"strings"
)

// flattenDocument converts a nested document (as produced by the YAML and TOML
// decoders) into flat canonical keys: nested paths joined with underscores and
// upper-cased, so `auth: {api_key: x}` and the env var AUTH_API_KEY address
// the same key.
func flattenDocument(doc map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(doc))
	if err := flattenInto("", doc, out); err != nil {
		return nil, err
	}
	return out, nil
}

func flattenInto(prefix string, node map[string]any, out map[string]string) error {
	for key, value := range node {
		name := canonicalKey(key)
		if prefix != "" {
			name = prefix + "_" + name
		}

		switch v := value.(type) {
		case map[string]any:
			if err := flattenInto(name, v, out); err != nil {
				return err
			}
		case []any:
			rendered := make([]string, 0, len(v))
			for _, item := range v {
				s, err := renderScalar(item)
				if err != nil {
					return fmt.Errorf("key %s: %w", name, err)
				}
				rendered = append(rendered, s)
			}
			out[name] = strings.Join(rendered, ",")
		default:
			s, err := renderScalar(v)
			if err != nil {
				return fmt.Errorf("key %s: %w", name, err)
			}
			out[name] = s
		}
	}
	return nil
}

// canonicalKey maps a document key to the flat env-var style key space.
func canonicalKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.ReplaceAll(key, "-", "_")
	key = strings.ReplaceAll(key, ".", "_")
	return strings.ToUpper(key)
}

func renderScalar(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", value)
	}
}
