package topology

import (
	"context"

	"github.com/vk/rspecgen/internal/catalog"
	"github.com/vk/rspecgen/internal/ctxlog"
	"github.com/vk/rspecgen/internal/params"
)

// Compiler turns configurations of one profile into node descriptions.
// It holds no mutable state and may be shared.
type Compiler struct {
	profile *catalog.Profile
}

// NewCompiler creates a compiler for the profile.
func NewCompiler(profile *catalog.Profile) *Compiler {
	return &Compiler{profile: profile}
}

// Compile builds the node and its overrides. The configuration must have
// been validated against the compiler's profile.
func (c *Compiler) Compile(ctx context.Context, cfg *params.Configuration) (*Node, []Override) {
	p := c.profile
	if cfg.Profile() != p.Name {
		defectf(p.Name, "configuration belongs to profile %q", cfg.Profile())
	}
	logger := ctxlog.FromContext(ctx)

	node := &Node{
		ClientID:     ClientID,
		Exclusive:    true,
		HardwareType: cfg.HardwareType(),
	}

	// Image selection. Exactly one of the two predicates holds.
	switch {
	case cfg.Holds(params.WhenFromSource):
		node.DiskImage = p.BaseImage
	case cfg.Holds(params.WhenPrebuilt):
		node.DiskImage = p.PrebuiltImage
	default:
		defectf(p.Name, "neither %s nor %s holds", params.WhenFromSource, params.WhenPrebuilt)
	}

	vars := map[string]string{catalog.VarUser: p.RunAs()}

	switch s := p.Strategy.(type) {
	case *catalog.Script:
		if cfg.Holds(params.WhenFromSource) {
			for _, comp := range s.Components {
				node.Commands = append(node.Commands, c.render(s.Deploy, map[string]string{
					catalog.VarUser:      p.RunAs(),
					catalog.VarRef:       comp.Ref,
					catalog.VarComponent: comp.Name,
				}, "deploy:"+comp.Name))
			}
		}
	case *catalog.Ansible:
		for _, phase := range s.Phases() {
			node.Commands = append(node.Commands, c.render(phase, vars, phase.Name))
		}
		node.RoleBinding = &RoleBinding{
			Role:         s.Role.Name,
			RolePath:     s.Role.Path,
			Playbook:     s.Role.Playbook.Name,
			PlaybookPath: s.Role.Playbook.Path,
		}
	default:
		defectf(p.Name, "no branch for strategy %T", p.Strategy)
	}

	node.RemoteDisplay = cfg.Holds(params.WhenRemoteDisplay)

	overrides := c.overrides(cfg)

	logger.Debug("Node compiled.",
		"profile", p.Name,
		"image", node.DiskImage,
		"commands", len(node.Commands),
		"overrides", len(overrides),
		"remote_display", node.RemoteDisplay,
	)
	return node, overrides
}

func (c *Compiler) overrides(cfg *params.Configuration) []Override {
	var out []Override
	seen := make(map[string]struct{})
	for _, o := range c.profile.Overrides {
		if !cfg.Holds(o.When) {
			continue
		}
		if _, dup := seen[o.Name]; dup {
			defectf(c.profile.Name, "override %q emitted twice", o.Name)
		}
		seen[o.Name] = struct{}{}
		out = append(out, Override{Name: o.Name, Value: o.Value, When: o.When})
	}
	return out
}

func (c *Compiler) render(t *catalog.Template, vars map[string]string, name string) Command {
	if t == nil {
		defectf(c.profile.Name, "command %q has no template", name)
	}
	out, err := t.Render(vars)
	if err != nil {
		defectf(c.profile.Name, "%v", err)
	}
	return Command{Name: name, Shell: t.Shell, Command: out}
}
