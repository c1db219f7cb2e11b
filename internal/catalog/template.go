package catalog

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"golang.org/x/exp/slices"
)

// Variables available to command templates.
const (
	VarUser      = "user"
	VarRef       = "ref"
	VarComponent = "component"
)

// DefaultShell runs commands that do not name a shell.
const DefaultShell = "sh"

// Template is a bootstrap command template: an HCL template expression and
// the shell that runs the rendered command.
type Template struct {
	Name  string
	Shell string

	expr    hcl.Expression
	allowed []string
}

// newTemplate checks that expr only references allowed variables.
func newTemplate(name, shell string, expr hcl.Expression, allowed ...string) (*Template, error) {
	if shell == "" {
		shell = DefaultShell
	}
	if expr == nil {
		return nil, fmt.Errorf("command %q has no run template", name)
	}

	var unknown []string
	for _, traversal := range expr.Variables() {
		root := traversal.RootName()
		if !slices.Contains(allowed, root) && !slices.Contains(unknown, root) {
			unknown = append(unknown, root)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("command %q references unknown variables %s (available: %s)",
			name, strings.Join(unknown, ", "), strings.Join(allowed, ", "))
	}

	return &Template{Name: name, Shell: shell, expr: expr, allowed: allowed}, nil
}

// ParseTemplate builds a template from source text, e.g.
// "sudo -u ${user} /bin/sh -c 'setup.sh'". It is the programmatic
// counterpart of a `run` attribute.
func ParseTemplate(name, shell, src string, allowed ...string) (*Template, error) {
	expr, diags := hclsyntax.ParseTemplate([]byte(src), name, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse command %q: %w", name, diags)
	}
	return newTemplate(name, shell, expr, allowed...)
}

// Render evaluates the template. Every variable the template references must
// be present in vars.
func (t *Template) Render(vars map[string]string) (string, error) {
	ctxVars := make(map[string]cty.Value, len(vars))
	for k, v := range vars {
		ctxVars[k] = cty.StringVal(v)
	}

	val, diags := t.expr.Value(&hcl.EvalContext{Variables: ctxVars})
	if diags.HasErrors() {
		return "", fmt.Errorf("failed to render command %q: %w", t.Name, diags)
	}
	if val.IsNull() || !val.IsWhollyKnown() {
		return "", fmt.Errorf("command %q rendered to a null or unknown value", t.Name)
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("command %q did not render to a string: %w", t.Name, err)
	}
	return str.AsString(), nil
}
