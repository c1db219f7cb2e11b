package params

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Parameter names understood by the compiler. A profile may declare any
// subset beyond HardwareType and DeployFromSource.
const (
	HardwareType        = "hardware_type"
	DeployFromSource    = "deploy_from_source"
	EnableRICxApp       = "enable_ric_xapp"
	EnableRemoteDisplay = "enable_remote_display"
)

var identPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// legalPattern keeps enum values safe to feed into a validator `oneof` tag.
var legalPattern = regexp.MustCompile(`^[a-zA-Z0-9_.:-]+$`)

// LegalValue is one member of an enum parameter's legal set.
type LegalValue struct {
	Value string
	Label string
}

// Definition declares a single parameter.
type Definition struct {
	Name        string
	Description string
	Type        cty.Type
	Default     cty.Value
	Legal       []LegalValue
	Advanced    bool
}

// IsEnum reports whether the parameter is restricted to a legal set.
func (d *Definition) IsEnum() bool {
	return len(d.Legal) > 0
}

// LegalValues returns the bare legal values in declaration order.
func (d *Definition) LegalValues() []string {
	out := make([]string, len(d.Legal))
	for i, l := range d.Legal {
		out[i] = l.Value
	}
	return out
}

// check validates the definition itself. It returns one message per problem.
func (d *Definition) check() []string {
	var errs []string
	if !identPattern.MatchString(d.Name) {
		errs = append(errs, fmt.Sprintf("parameter name %q is not a valid identifier", d.Name))
	}

	switch {
	case d.Type.Equals(cty.Bool):
		if d.IsEnum() {
			errs = append(errs, fmt.Sprintf("parameter %q: legal values are only allowed on string parameters", d.Name))
		}
	case d.Type.Equals(cty.String):
		if !d.IsEnum() {
			errs = append(errs, fmt.Sprintf("parameter %q: string parameters must declare their legal values", d.Name))
		}
	default:
		errs = append(errs, fmt.Sprintf("parameter %q: unsupported type %s, expected bool or string", d.Name, d.Type.FriendlyName()))
		return errs
	}

	seen := make(map[string]struct{}, len(d.Legal))
	for _, l := range d.Legal {
		if !legalPattern.MatchString(l.Value) {
			errs = append(errs, fmt.Sprintf("parameter %q: legal value %q contains unsupported characters", d.Name, l.Value))
		}
		if _, dup := seen[l.Value]; dup {
			errs = append(errs, fmt.Sprintf("parameter %q: legal value %q declared twice", d.Name, l.Value))
		}
		seen[l.Value] = struct{}{}
	}

	if d.Default.IsNull() {
		errs = append(errs, fmt.Sprintf("parameter %q: a default value is required", d.Name))
		return errs
	}
	def, err := convert.Convert(d.Default, d.Type)
	if err != nil {
		errs = append(errs, fmt.Sprintf("parameter %q: default is %s, expected %s", d.Name, d.Default.Type().FriendlyName(), d.Type.FriendlyName()))
		return errs
	}
	d.Default = def
	if d.IsEnum() && d.Type.Equals(cty.String) {
		if _, ok := seen[def.AsString()]; !ok {
			errs = append(errs, fmt.Sprintf("parameter %q: default %q is not one of %s", d.Name, def.AsString(), strings.Join(d.LegalValues(), ", ")))
		}
	}
	return errs
}
