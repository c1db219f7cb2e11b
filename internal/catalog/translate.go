// This file translates decoded catalog blocks (package schema) into the
// validated catalog model. Problems are collected, not returned early, so a
// broken catalog is reported in one go.

package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vk/rspecgen/internal/params"
	"github.com/vk/rspecgen/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// namePattern constrains profile, role, override and step names.
var namePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)

// translator accumulates problems for one profile.
type translator struct {
	where    string
	problems []string
}

func (t *translator) problemf(format string, args ...any) {
	t.problems = append(t.problems, t.where+": "+fmt.Sprintf(format, args...))
}

// translateProfile converts one decoded profile block.
func translateProfile(file string, s *schema.Profile) (*Profile, []string) {
	t := &translator{where: fmt.Sprintf("%s: profile %q", file, s.Name)}

	if !namePattern.MatchString(s.Name) {
		t.problemf("invalid profile name")
	}
	if strings.TrimSpace(s.RunAs) == "" {
		t.problemf("run_as must not be empty")
	}

	p := &Profile{
		Name:        s.Name,
		Description: s.Description,
		runAs:       s.RunAs,
	}

	if s.Images == nil {
		t.problemf("an images block is required")
	} else {
		if s.Images.Base == "" || s.Images.Prebuilt == "" {
			t.problemf("images must name both a base and a prebuilt image")
		}
		p.BaseImage = s.Images.Base
		p.PrebuiltImage = s.Images.Prebuilt
	}

	p.Schema = t.translateParameters(s.Name, s.Parameters)
	p.Strategy = t.translateStrategy(s.Ansible, s.Script)
	p.Overrides = t.translateOverrides(p, s.Overrides)
	p.Tour = t.translateTour(p, s.Tour)

	if len(t.problems) > 0 {
		return nil, t.problems
	}
	return p, nil
}

func (t *translator) translateParameters(profile string, in []*schema.Parameter) *params.Schema {
	defs := make([]*params.Definition, 0, len(in))
	for _, sp := range in {
		ty, err := typeExprToCtyType(sp.Type)
		if err != nil {
			t.problemf("parameter %q: %v", sp.Name, err)
			continue
		}

		def := cty.NullVal(ty)
		if sp.Default != nil {
			val, diags := sp.Default.Value(nil)
			if diags.HasErrors() {
				t.problemf("parameter %q: invalid default value: %v", sp.Name, diags)
				continue
			}
			def = val
		}

		legal := make([]params.LegalValue, 0, len(sp.Legal))
		for _, l := range sp.Legal {
			legal = append(legal, params.LegalValue{Value: l.Value, Label: l.Label})
		}

		defs = append(defs, &params.Definition{
			Name:        sp.Name,
			Description: sp.Description,
			Type:        ty,
			Default:     def,
			Legal:       legal,
			Advanced:    sp.Advanced,
		})
	}

	s, err := params.NewSchema(profile, defs...)
	if err != nil {
		t.problemf("%v", err)
		return nil
	}

	// The compiler relies on these.
	requireParam(t, s, params.HardwareType, cty.String)
	requireParam(t, s, params.DeployFromSource, cty.Bool)
	for _, toggle := range []string{params.EnableRICxApp, params.EnableRemoteDisplay} {
		if d, ok := s.Lookup(toggle); ok && !d.Type.Equals(cty.Bool) {
			t.problemf("parameter %q must be bool", toggle)
		}
	}
	return s
}

func requireParam(t *translator, s *params.Schema, name string, ty cty.Type) {
	d, ok := s.Lookup(name)
	if !ok {
		t.problemf("parameter %q must be declared", name)
		return
	}
	if !d.Type.Equals(ty) {
		t.problemf("parameter %q must be %s", name, ty.FriendlyName())
	}
}

func (t *translator) translateStrategy(a *schema.Ansible, s *schema.Script) Strategy {
	switch {
	case a != nil && s != nil:
		t.problemf("only one of the ansible and script blocks may be given")
		return nil
	case a != nil:
		return t.translateAnsible(a)
	case s != nil:
		return t.translateScript(s)
	default:
		t.problemf("a bootstrap strategy (ansible or script block) is required")
		return nil
	}
}

func (t *translator) translateAnsible(a *schema.Ansible) *Ansible {
	out := &Ansible{
		Head:                t.command("head", a.Head, VarUser),
		CollectionInstall:   t.command("collection_install", a.CollectionInstall, VarUser),
		RequirementsInstall: t.command("requirements_install", a.RequirementsInstall, VarUser),
		Tail:                t.command("tail", a.Tail, VarUser),
	}

	if a.Role == nil {
		t.problemf("ansible: a role block is required")
		return out
	}
	if !namePattern.MatchString(a.Role.Name) {
		t.problemf("ansible: invalid role name %q", a.Role.Name)
	}
	if a.Role.Playbook == nil {
		t.problemf("ansible: role %q needs a playbook", a.Role.Name)
		return out
	}
	if a.Role.Playbook.Path == "" {
		t.problemf("ansible: playbook %q needs a path", a.Role.Playbook.Name)
	}
	out.Role = Role{
		Name: a.Role.Name,
		Path: a.Role.Path,
		Playbook: Playbook{
			Name: a.Role.Playbook.Name,
			Path: a.Role.Playbook.Path,
		},
	}
	return out
}

func (t *translator) translateScript(s *schema.Script) *Script {
	out := &Script{
		Deploy: t.command("deploy", s.Deploy, VarUser, VarRef, VarComponent),
	}
	if len(s.Components) == 0 {
		t.problemf("script: at least one component is required")
	}
	seen := make(map[string]struct{}, len(s.Components))
	for _, c := range s.Components {
		if !namePattern.MatchString(c.Name) {
			t.problemf("script: invalid component name %q", c.Name)
		}
		if _, dup := seen[c.Name]; dup {
			t.problemf("script: component %q declared twice", c.Name)
		}
		seen[c.Name] = struct{}{}
		if strings.TrimSpace(c.Ref) == "" {
			t.problemf("script: component %q needs a build reference", c.Name)
		}
		out.Components = append(out.Components, Component{Name: c.Name, Ref: c.Ref})
	}
	return out
}

func (t *translator) command(name string, c *schema.Command, allowed ...string) *Template {
	if c == nil {
		t.problemf("%s: command block is required", name)
		return nil
	}
	tmpl, err := newTemplate(name, c.Shell, c.Run, allowed...)
	if err != nil {
		t.problemf("%v", err)
		return nil
	}
	return tmpl
}

// predicate checks a `when` attribute against the predicate table and the
// profile's own parameters.
func (t *translator) predicate(p *Profile, what, when string) params.Predicate {
	pred := params.Predicate(when)
	if !pred.Known() {
		t.problemf("%s: unknown predicate %q", what, when)
		return params.Always
	}
	if param := pred.Parameter(); param != "" && p.Schema != nil {
		if _, ok := p.Schema.Lookup(param); !ok {
			t.problemf("%s: predicate %q reads parameter %q, which the profile does not declare", what, when, param)
		}
	}
	return pred
}

func (t *translator) translateOverrides(p *Profile, in []*schema.Override) []OverrideDef {
	if len(in) > 0 {
		if _, ok := p.Strategy.(*Ansible); !ok {
			t.problemf("overrides are role variables and need the ansible strategy")
		}
	}

	out := make([]OverrideDef, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, o := range in {
		what := fmt.Sprintf("override %q", o.Name)
		if !namePattern.MatchString(o.Name) {
			t.problemf("%s: invalid name", what)
		}
		if _, dup := seen[o.Name]; dup {
			t.problemf("%s: declared twice", what)
		}
		seen[o.Name] = struct{}{}
		out = append(out, OverrideDef{
			Name:  o.Name,
			Value: o.Value,
			When:  t.predicate(p, what, o.When),
		})
	}
	return out
}

func (t *translator) translateTour(p *Profile, in *schema.Tour) TourDef {
	if in == nil {
		t.problemf("a tour block is required")
		return TourDef{}
	}
	if strings.TrimSpace(in.Description) == "" {
		t.problemf("tour: description must not be empty")
	}

	out := TourDef{Description: strings.TrimRight(in.Description, "\n")}
	seen := make(map[string]struct{}, len(in.Steps))
	for _, st := range in.Steps {
		what := fmt.Sprintf("tour step %q", st.Name)
		if !namePattern.MatchString(st.Name) {
			t.problemf("%s: invalid name", what)
		}
		if _, dup := seen[st.Name]; dup {
			t.problemf("%s: declared twice", what)
		}
		seen[st.Name] = struct{}{}
		out.Steps = append(out.Steps, TourStepDef{
			Name: st.Name,
			When: t.predicate(p, what, st.When),
			Text: strings.TrimRight(st.Text, "\n"),
		})
	}
	if len(out.Steps) == 0 {
		t.problemf("tour: at least one step is required")
	}
	return out
}
