package nix

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ListAttrs evaluates the jobset's attribute index and returns the flattened
// attribute names in definition order.
func (t *Tool) ListAttrs() ([]string, error) {
	expr := fmt.Sprintf("builtins.attrNames (import %s {})", t.jobset)
	out, err := t.runner.Output("nix-instantiate", "--eval", "--strict", "--json", "-E", expr)
	if err != nil {
		return nil, fmt.Errorf("could not list attributes of %s: %w", t.jobset, err)
	}

	var attrs []string
	if err := json.Unmarshal(out, &attrs); err != nil {
		return nil, fmt.Errorf("unexpected attribute index output: %w", err)
	}
	return attrs, nil
}

// PrimeIndex force-evaluates the attribute index so later queries do not pay
// the cold-cache cost. Runs quietly; errors are the caller's to ignore.
func (t *Tool) PrimeIndex() error {
	expr := fmt.Sprintf("builtins.attrNames (import %s {})", t.jobset)
	_, err := t.runner.QuietOutput("nix-instantiate", "--eval", "--strict", "--json", "-E", expr)
	return err
}

// FilterAttrs returns the attrs containing substr, preserving relative order.
// The match is case-sensitive; an empty substr matches everything.
func FilterAttrs(attrs []string, substr string) []string {
	if substr == "" {
		return attrs
	}
	var matched []string
	for _, attr := range attrs {
		if strings.Contains(attr, substr) {
			matched = append(matched, attr)
		}
	}
	return matched
}
