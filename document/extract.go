package document

import (
	"sort"
	"strings"
)

// Extract flattens the named fields of doc into one space-joined text blob,
// in field-declaration order. String values are taken as-is; array values
// contribute their string elements; object values contribute their direct
// string members, visited in sorted-key order so the blob is deterministic.
// Extraction is exactly one level deep: nested arrays and objects inside an
// array or object value are not traversed. Absent fields, nulls, and values
// of any other kind contribute nothing.
func Extract(doc Document, fields []string) string {
	var b strings.Builder
	for _, field := range fields {
		switch value := doc[field].(type) {
		case string:
			b.WriteString(value)
			b.WriteByte(' ')
		case []any:
			for _, el := range value {
				if s, ok := el.(string); ok {
					b.WriteString(s)
					b.WriteByte(' ')
				}
			}
		case map[string]any:
			keys := make([]string, 0, len(value))
			for k := range value {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if s, ok := value[k].(string); ok {
					b.WriteString(s)
					b.WriteByte(' ')
				}
			}
		}
	}
	return strings.TrimSpace(b.String())
}
