package wire

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

var readOnlyFields = []string{"id", "createdAt", "updatedAt"}

// Patch sets one JSON-named field of a wire slot from its text form.
// Numeric fields go through the lenient Number parser, so "4,500" and "$4500" are accepted.
func Patch(dst any, field, value string) error {
	if slices.Contains(readOnlyFields, field) {
		return fmt.Errorf("field %q is read-only", field)
	}

	raw, err := json.Marshal(dst)
	if err != nil {
		return err
	}
	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}

	if _, ok := doc[field]; !ok {
		fields := make([]string, 0, len(doc))
		for k := range doc {
			if !slices.Contains(readOnlyFields, k) {
				fields = append(fields, k)
			}
		}
		slices.Sort(fields)
		return fmt.Errorf("unknown field %q (want one of %s)", field, strings.Join(fields, ", "))
	}

	patch, err := json.Marshal(map[string]string{field: value})
	if err != nil {
		return err
	}
	return json.Unmarshal(patch, dst)
}
