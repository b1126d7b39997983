package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// emitJSON marshals v, applies every --patch "path=value" pair in order
// (sjson.Set), then --query (gjson.Get) if set, and prints the result.
func emitJSON(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	out := string(raw)

	for _, op := range patchOps {
		path, value, ok := strings.Cut(op, "=")
		if !ok {
			return fmt.Errorf("invalid --patch %q, expected path=value", op)
		}
		out, err = sjson.Set(out, path, value)
		if err != nil {
			return fmt.Errorf("failed to apply --patch %q: %w", op, err)
		}
	}

	if queryPath != "" {
		result := gjson.Get(out, queryPath)
		fmt.Println(result.String())
		return nil
	}

	fmt.Println(out)
	return nil
}
