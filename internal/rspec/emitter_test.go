package rspec

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/rspecgen/internal/params"
	"github.com/vk/rspecgen/internal/topology"
	"github.com/vk/rspecgen/internal/tour"
	"gopkg.in/yaml.v3"
)

func sampleRequest() (*topology.Node, []topology.Override, *tour.Tour) {
	node := &topology.Node{
		ClientID:     topology.ClientID,
		Exclusive:    true,
		HardwareType: "d430",
		DiskImage:    "urn:publicid:IDN+emulab.net+image+emulab-ops//UBUNTU22-64-STD",
		Commands: []topology.Command{
			{Name: "head", Shell: "sh", Command: "/local/head.sh"},
			{Name: "tail", Shell: "sh", Command: "/local/tail.sh"},
		},
		RoleBinding: &topology.RoleBinding{
			Role:         "single_node_oran",
			RolePath:     "ansible",
			Playbook:     "single_node_oran",
			PlaybookPath: "single_node_oran.yml",
		},
		RemoteDisplay: true,
	}
	overrides := []topology.Override{
		{Name: "srsran_project_enable_du_e2", Value: "true", When: params.WhenRICxApp},
	}
	t := &tour.Tour{
		Description:  "### Title",
		Instructions: "step one\n\nstep two",
		Steps:        []string{"one", "two"},
	}
	return node, overrides, t
}

func TestEmit_RSpec(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	node, overrides, tr := sampleRequest()
	e := &Emitter{Format: FormatRSpec, Profile: "srsran-oran", Fingerprint: "abc"}
	var buf bytes.Buffer

	// --- Act ---
	err := e.Emit(&buf, node, overrides, tr)

	// --- Assert ---
	require.NoError(t, err)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	for _, want := range []string{
		`<rspec xmlns="http://www.geni.net/resources/rspec/3" xmlns:emulab="` + NamespaceEmulab + `" xmlns:ansible="` + NamespaceAnsible + `" type="request">`,
		`<!-- rspecgen profile=srsran-oran fingerprint=abc -->`,
		`<node client_id="node" exclusive="true">`,
		`<sliver_type name="raw-pc">`,
		`<disk_image name="urn:publicid:IDN+emulab.net+image+emulab-ops//UBUNTU22-64-STD"></disk_image>`,
		`<hardware_type name="d430"></hardware_type>`,
		`<execute shell="sh" command="/local/head.sh"></execute>`,
		`<emulab:vnc></emulab:vnc>`,
		`<ansible:role_binding role="single_node_oran"></ansible:role_binding>`,
		`<ansible:role name="single_node_oran" path="ansible">`,
		`<ansible:playbook name="single_node_oran" path="single_node_oran.yml"></ansible:playbook>`,
		`<ansible:override name="srsran_project_enable_du_e2" value="true"></ansible:override>`,
		`<rspec_tour xmlns="` + NamespaceTour + `">`,
		`<description type="markdown"><![CDATA[### Title]]></description>`,
		"<instructions type=\"markdown\"><![CDATA[step one\n\nstep two]]></instructions>",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "&#xA;")
	assert.Less(t, strings.Index(out, "/local/head.sh"), strings.Index(out, "/local/tail.sh"))
}

func TestEmit_RSpecOmitsDisabledFeatures(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	node, _, tr := sampleRequest()
	node.RemoteDisplay = false
	node.RoleBinding = nil
	node.Commands = nil
	var buf bytes.Buffer

	// --- Act ---
	err := (&Emitter{Profile: "p"}).Emit(&buf, node, nil, tr)

	// --- Assert ---
	require.NoError(t, err)
	out := buf.String()
	assert.NotContains(t, out, "emulab:vnc")
	assert.NotContains(t, out, "ansible:role")
	assert.NotContains(t, out, "ansible:override")
	assert.NotContains(t, out, "<services>")
}

func TestEmit_CommentCannotBreakOut(t *testing.T) {
	t.Parallel()

	node, overrides, tr := sampleRequest()
	var buf bytes.Buffer

	err := (&Emitter{Profile: "a--b"}).Emit(&buf, node, overrides, tr)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "profile=a- -b")
}

func TestEmit_StructuredFormats(t *testing.T) {
	t.Parallel()

	node, overrides, tr := sampleRequest()
	want := Transform("srsran-oran", "abc", node, overrides, tr)

	testCases := []struct {
		format Format
		decode func([]byte, any) error
	}{
		{format: FormatJSON, decode: json.Unmarshal},
		{format: FormatYAML, decode: yaml.Unmarshal},
	}

	for _, tc := range testCases {
		t.Run(string(tc.format), func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			var buf bytes.Buffer
			e := &Emitter{Format: tc.format, Profile: "srsran-oran", Fingerprint: "abc"}

			// --- Act ---
			require.NoError(t, e.Emit(&buf, node, overrides, tr))

			// --- Assert ---
			var got RequestDesc
			require.NoError(t, tc.decode(buf.Bytes(), &got))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("decoded request mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEmit_WriteFailure(t *testing.T) {
	t.Parallel()

	node, overrides, tr := sampleRequest()

	err := (&Emitter{Format: FormatJSON}).Emit(failingWriter{}, node, overrides, tr)

	var eerr *EmitError
	require.True(t, errors.As(err, &eerr))
	assert.Equal(t, FormatJSON, eerr.Format)
	assert.EqualError(t, err, "failed to emit json document: disk full")
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatRSpec, f)

	f, err = ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("toml")
	assert.EqualError(t, err, `unknown format "toml" (available: rspec, yaml, json)`)
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, FormatYAML, FormatFromPath("out/req.yml"))
	assert.Equal(t, FormatJSON, FormatFromPath("req.JSON"))
	assert.Equal(t, FormatRSpec, FormatFromPath("req.xml"))
	assert.Equal(t, FormatRSpec, FormatFromPath("-"))
}
