package params

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"
)

// fingerprintSpace namespaces configuration fingerprints.
var fingerprintSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/vk/rspecgen/params"))

// Value is a resolved parameter.
type Value struct {
	Name  string
	Value cty.Value
}

// String renders the value the way it would be written in a parameter file.
func (v Value) String() string {
	return v.Name + "=" + FormatValue(v.Value)
}

// Configuration is a validated, fully defaulted parameter set. It has no
// exported fields and no mutators.
type Configuration struct {
	profile string
	values  map[string]cty.Value
	order   []string
}

// Profile names the profile the configuration was validated against.
func (c *Configuration) Profile() string { return c.profile }

// Has reports whether the profile declares the parameter.
func (c *Configuration) Has(name string) bool {
	_, ok := c.values[name]
	return ok
}

// HardwareType is the node hardware class.
func (c *Configuration) HardwareType() string {
	return c.String(HardwareType)
}

// Bool reads a boolean parameter. Parameters the profile does not declare
// read as false, so an absent toggle is an unset toggle.
func (c *Configuration) Bool(name string) bool {
	v, ok := c.values[name]
	if !ok {
		return false
	}
	if !v.Type().Equals(cty.Bool) {
		panic(fmt.Sprintf("params: parameter %q is %s, not bool", name, v.Type().FriendlyName()))
	}
	return v.True()
}

// String reads a string parameter, or "" if the profile does not declare it.
func (c *Configuration) String(name string) string {
	v, ok := c.values[name]
	if !ok {
		return ""
	}
	if !v.Type().Equals(cty.String) {
		panic(fmt.Sprintf("params: parameter %q is %s, not string", name, v.Type().FriendlyName()))
	}
	return v.AsString()
}

// Values returns every parameter in schema declaration order.
func (c *Configuration) Values() []Value {
	out := make([]Value, len(c.order))
	for i, name := range c.order {
		out[i] = Value{Name: name, Value: c.values[name]}
	}
	return out
}

// Fingerprint is a name-based UUID over the profile and resolved values. Two
// configurations share a fingerprint iff they would compile identically.
func (c *Configuration) Fingerprint() string {
	var sb strings.Builder
	sb.WriteString(c.profile)
	for _, v := range c.Values() {
		sb.WriteByte('\n')
		sb.WriteString(v.String())
	}
	return uuid.NewSHA1(fingerprintSpace, []byte(sb.String())).String()
}

// FormatValue renders a parameter value as an HCL literal.
func FormatValue(v cty.Value) string {
	switch {
	case v.IsNull():
		return "null"
	case v.Type().Equals(cty.Bool):
		return strconv.FormatBool(v.True())
	case v.Type().Equals(cty.String):
		return strconv.Quote(v.AsString())
	default:
		return v.GoString()
	}
}
