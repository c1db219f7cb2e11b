package params

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"golang.org/x/exp/slices"
)

// validate is shared; validator.Validate is safe for concurrent use.
var validate = validator.New()

// Schema is the ordered set of parameters a profile accepts.
type Schema struct {
	profile string
	defs    []*Definition
	byName  map[string]*Definition
}

// NewSchema builds a schema from definitions, checking each one and the set
// as a whole. Defaults are normalised to the declared type.
func NewSchema(profile string, defs ...*Definition) (*Schema, error) {
	s := &Schema{
		profile: profile,
		byName:  make(map[string]*Definition, len(defs)),
	}

	var errs []string
	for _, d := range defs {
		if d == nil {
			continue
		}
		if _, dup := s.byName[d.Name]; dup {
			errs = append(errs, fmt.Sprintf("parameter %q declared twice", d.Name))
			continue
		}
		errs = append(errs, d.check()...)
		s.byName[d.Name] = d
		s.defs = append(s.defs, d)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid schema for profile %q:\n- %s", profile, strings.Join(errs, "\n- "))
	}
	return s, nil
}

// Profile names the profile the schema belongs to.
func (s *Schema) Profile() string { return s.profile }

// Definitions returns the parameters in declaration order.
func (s *Schema) Definitions() []*Definition {
	return slices.Clone(s.defs)
}

// Lookup finds a parameter by name.
func (s *Schema) Lookup(name string) (*Definition, bool) {
	d, ok := s.byName[name]
	return d, ok
}

// Validate checks raw values against the schema and returns the resulting
// Configuration. Parameters absent from raw, or supplied as null, take their
// default. Every problem is reported at once through *ValidationError.
func (s *Schema) Validate(raw Raw) (*Configuration, error) {
	verr := &ValidationError{Profile: s.profile}

	for _, name := range raw.Names() {
		if _, ok := s.byName[name]; !ok {
			verr.add(name, "is not a parameter of this profile")
		}
	}

	values := make(map[string]cty.Value, len(s.defs))
	for _, def := range s.defs {
		v, supplied := raw[def.Name]
		if !supplied || v.IsNull() {
			values[def.Name] = def.Default
			continue
		}
		if !v.IsWhollyKnown() {
			verr.add(def.Name, "value is not known")
			continue
		}

		// cty would quietly turn true into "true"; enum values must be strings.
		if def.IsEnum() && !v.Type().Equals(cty.String) {
			verr.add(def.Name, fmt.Sprintf("expected string, got %s", describe(v)))
			continue
		}

		conv, err := convert.Convert(v, def.Type)
		if err != nil {
			verr.add(def.Name, fmt.Sprintf("expected %s, got %s", def.Type.FriendlyName(), describe(v)))
			continue
		}
		if def.IsEnum() {
			if reason := checkLegal(def, conv.AsString()); reason != "" {
				verr.add(def.Name, reason)
				continue
			}
		}
		values[def.Name] = conv
	}

	if verr.HasProblems() {
		return nil, verr
	}

	names := make([]string, len(s.defs))
	for i, d := range s.defs {
		names[i] = d.Name
	}
	return &Configuration{profile: s.profile, values: values, order: names}, nil
}

// checkLegal returns an empty string when value belongs to the legal set.
func checkLegal(def *Definition, value string) string {
	tag := "required,oneof=" + strings.Join(def.LegalValues(), " ")
	if err := validate.Var(value, tag); err != nil {
		return fmt.Sprintf("must be one of %s, got %q", strings.Join(def.LegalValues(), ", "), value)
	}
	return ""
}

func describe(v cty.Value) string {
	if v.Type().Equals(cty.String) {
		return fmt.Sprintf("string %q", v.AsString())
	}
	return v.Type().FriendlyName()
}
