package params

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/rspecgen/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"golang.org/x/exp/slices"
)

// ErrInvalidAssignment marks a malformed `name=value` pair.
var ErrInvalidAssignment = errors.New("invalid parameter assignment")

// Raw holds parameter values as supplied, before validation.
type Raw map[string]cty.Value

// Names returns the supplied parameter names, sorted.
func (r Raw) Names() []string {
	names := make([]string, 0, len(r))
	for n := range r {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Merge returns a new Raw with other's values layered over r's.
func (r Raw) Merge(other Raw) Raw {
	out := make(Raw, len(r)+len(other))
	for k, v := range r {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// LoadFile reads a parameter file: an HCL body of top-level attributes,
// e.g. `hardware_type = "d740"`.
func LoadFile(ctx context.Context, path string) (Raw, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading parameter file.", "path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameter file: %w", err)
	}
	raw, err := ParseFile(src, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Parameter file loaded.", "path", path, "parameters", raw.Names())
	return raw, nil
}

// ParseFile parses parameter file source. Expressions are evaluated without
// variables or functions; parameters are literals.
func ParseFile(src []byte, filename string) (Raw, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse parameter file %s: %w", filename, diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("parameter file %s may only contain attributes: %w", filename, diags)
	}

	raw := make(Raw, len(attrs))
	var all hcl.Diagnostics
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			all = append(all, diags...)
			continue
		}
		raw[name] = val
	}
	if all.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate parameter file %s: %w", filename, all)
	}
	return raw, nil
}

// ParseAssignments turns `name=value` pairs into raw string values. Type
// conversion is left to Schema.Validate, so `deploy_from_source=false` works.
func ParseAssignments(pairs []string) (Raw, error) {
	raw := make(Raw, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w %q: expected name=value", ErrInvalidAssignment, pair)
		}
		raw[name] = cty.StringVal(value)
	}
	return raw, nil
}
