package topology

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/rspecgen/internal/catalog"
	"github.com/vk/rspecgen/internal/params"
	"github.com/zclconf/go-cty/cty"
)

func builtinProfile(t *testing.T, name string) *catalog.Profile {
	t.Helper()
	c, err := catalog.Default(context.Background())
	require.NoError(t, err)
	p, err := c.Profile(name)
	require.NoError(t, err)
	return p
}

func configure(t *testing.T, p *catalog.Profile, raw params.Raw) *params.Configuration {
	t.Helper()
	cfg, err := p.Schema.Validate(raw)
	require.NoError(t, err)
	return cfg
}

func ricOverrides(overrides []Override) []Override {
	var out []Override
	for _, o := range overrides {
		if o.When == params.WhenRICxApp {
			out = append(out, o)
		}
	}
	return out
}

func commandNames(n *Node) []string {
	names := make([]string, len(n.Commands))
	for i, c := range n.Commands {
		names[i] = c.Name
	}
	return names
}

func TestCompile_ExampleScenario(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	p := builtinProfile(t, "srsran-oran")
	cfg := configure(t, p, params.Raw{
		params.HardwareType:        cty.StringVal("d430"),
		params.DeployFromSource:    cty.False,
		params.EnableRICxApp:       cty.True,
		params.EnableRemoteDisplay: cty.True,
	})

	// --- Act ---
	node, overrides := NewCompiler(p).Compile(context.Background(), cfg)

	// --- Assert ---
	assert.Equal(t, ClientID, node.ClientID)
	assert.True(t, node.Exclusive)
	assert.Equal(t, "d430", node.HardwareType)
	assert.Equal(t, p.PrebuiltImage, node.DiskImage)
	assert.True(t, node.RemoteDisplay)
	for _, c := range node.Commands {
		assert.False(t, strings.HasPrefix(c.Name, "deploy:"), "unexpected deploy command %q", c.Name)
	}
	assert.Equal(t, []Override{
		{Name: "srsran_project_enable_du_e2", Value: "true", When: params.WhenRICxApp},
		{Name: "srsran_project_e2sm_kpm_enabled", Value: "true", When: params.WhenRICxApp},
	}, overrides)
	assert.Equal(t, &RoleBinding{
		Role:         "single_node_oran",
		RolePath:     "ansible",
		Playbook:     "single_node_oran",
		PlaybookPath: "single_node_oran.yml",
	}, node.RoleBinding)
}

func TestCompile_AnsiblePhases(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	p := builtinProfile(t, "srsran-oran")
	cfg := configure(t, p, nil)

	// --- Act ---
	node, overrides := NewCompiler(p).Compile(context.Background(), cfg)

	// --- Assert ---
	assert.Equal(t, []string{"head", "collection_install", "requirements_install", "tail"}, commandNames(node))
	assert.Equal(t,
		"sudo -u `geni-get user_urn | cut -f4 -d+` -Hi /bin/sh -c 'EMULAB_ANSIBLE_NOAUTO=1 /local/repository/emulab-ansible-bootstrap/head.sh >/local/logs/setup.log 2>&1'",
		node.Commands[0].Command)
	assert.Equal(t, p.BaseImage, node.DiskImage)
	assert.Empty(t, overrides, "no overrides without the RIC toggle")
}

func TestCompile_ScriptDeployCommands(t *testing.T) {
	t.Parallel()

	p := builtinProfile(t, "srsran-zmq")

	t.Run("from source", func(t *testing.T) {
		t.Parallel()

		node, overrides := NewCompiler(p).Compile(context.Background(), configure(t, p, nil))

		require.Len(t, node.Commands, 2)
		assert.Equal(t, "deploy:srsRAN_4G", node.Commands[0].Name)
		assert.Equal(t, "bash", node.Commands[0].Shell)
		assert.Equal(t,
			"sudo -u `geni-get user_urn | cut -f4 -d+` -Hi /bin/sh -c '/local/repository/bin/deploy.sh release_23_11 srsRAN_4G >/local/logs/deploy-srsRAN_4G.log 2>&1'",
			node.Commands[0].Command)
		assert.Contains(t, node.Commands[1].Command, "deploy.sh release_24_10 srsRAN_Project")
		assert.Equal(t, p.BaseImage, node.DiskImage)
		assert.Nil(t, node.RoleBinding)
		assert.Empty(t, overrides)
		assert.False(t, node.RemoteDisplay)
	})

	t.Run("prebuilt", func(t *testing.T) {
		t.Parallel()

		cfg := configure(t, p, params.Raw{params.DeployFromSource: cty.StringVal("false")})
		node, _ := NewCompiler(p).Compile(context.Background(), cfg)

		assert.Empty(t, node.Commands)
		assert.Equal(t, p.PrebuiltImage, node.DiskImage)
	})
}

func TestCompile_WrongProfileIsDefect(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	oran := builtinProfile(t, "srsran-oran")
	zmq := builtinProfile(t, "srsran-zmq")
	cfg := configure(t, zmq, nil)

	// --- Act & Assert ---
	defer func() {
		r := recover()
		d, ok := r.(*Defect)
		require.True(t, ok, "expected *Defect panic, got %v", r)
		assert.Equal(t, "srsran-oran", d.Profile)
	}()
	NewCompiler(oran).Compile(context.Background(), cfg)
}

// TestCompile_Properties checks what the compiler guarantees over the whole
// toggle space of both built-in profiles.
func TestCompile_Properties(t *testing.T) {
	oran := builtinProfile(t, "srsran-oran")
	zmq := builtinProfile(t, "srsran-zmq")

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	compile := func(p *catalog.Profile, hw string, fromSource, ric, display bool) (*Node, []Override) {
		raw := params.Raw{
			params.HardwareType:        cty.StringVal(hw),
			params.DeployFromSource:    cty.BoolVal(fromSource),
			params.EnableRemoteDisplay: cty.BoolVal(display),
		}
		if _, ok := p.Schema.Lookup(params.EnableRICxApp); ok {
			raw[params.EnableRICxApp] = cty.BoolVal(ric)
		}
		cfg, err := p.Schema.Validate(raw)
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		return NewCompiler(p).Compile(context.Background(), cfg)
	}

	hw := gen.OneConstOf("d430", "d740")

	properties.Property("overrides present iff ric toggle set", prop.ForAll(
		func(hw string, fromSource, ric, display bool) bool {
			_, overrides := compile(oran, hw, fromSource, ric, display)
			if ric {
				return len(ricOverrides(overrides)) == 2
			}
			return len(overrides) == 0
		},
		hw, gen.Bool(), gen.Bool(), gen.Bool(),
	))

	properties.Property("ansible phases keep their order", prop.ForAll(
		func(hw string, fromSource, ric, display bool) bool {
			node, _ := compile(oran, hw, fromSource, ric, display)
			return cmp.Equal([]string{"head", "collection_install", "requirements_install", "tail"}, commandNames(node))
		},
		hw, gen.Bool(), gen.Bool(), gen.Bool(),
	))

	properties.Property("one deploy command per component when building from source", prop.ForAll(
		func(hw string, fromSource, display bool) bool {
			node, _ := compile(zmq, hw, fromSource, false, display)
			if !fromSource {
				return len(node.Commands) == 0 && node.DiskImage == zmq.PrebuiltImage
			}
			components := zmq.Strategy.(*catalog.Script).Components
			if len(node.Commands) != len(components) || node.DiskImage != zmq.BaseImage {
				return false
			}
			for i, c := range components {
				if !strings.Contains(node.Commands[i].Command, c.Ref+" "+c.Name) {
					return false
				}
			}
			return true
		},
		hw, gen.Bool(), gen.Bool(),
	))

	properties.Property("remote display follows its toggle", prop.ForAll(
		func(hw string, fromSource, ric, display bool) bool {
			a, _ := compile(oran, hw, fromSource, ric, display)
			b, _ := compile(zmq, hw, fromSource, ric, display)
			return a.RemoteDisplay == display && b.RemoteDisplay == display
		},
		hw, gen.Bool(), gen.Bool(), gen.Bool(),
	))

	properties.Property("single exclusive node with the requested hardware", prop.ForAll(
		func(hw string, fromSource, ric, display bool) bool {
			node, _ := compile(oran, hw, fromSource, ric, display)
			return node.ClientID == ClientID && node.Exclusive && node.HardwareType == hw
		},
		hw, gen.Bool(), gen.Bool(), gen.Bool(),
	))

	properties.Property("compile is idempotent", prop.ForAll(
		func(hw string, fromSource, ric, display bool) bool {
			n1, o1 := compile(oran, hw, fromSource, ric, display)
			n2, o2 := compile(oran, hw, fromSource, ric, display)
			return cmp.Equal(n1, n2) && cmp.Equal(o1, o2)
		},
		hw, gen.Bool(), gen.Bool(), gen.Bool(),
	))

	properties.TestingRun(t)
}
