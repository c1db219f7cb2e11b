package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate_Render(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tmpl, err := ParseTemplate("deploy", "", "deploy.sh ${ref} ${component} >/log/${component}.log", VarRef, VarComponent)
	require.NoError(t, err)

	// --- Act ---
	out, err := tmpl.Render(map[string]string{VarRef: "v1", VarComponent: "ue"})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "deploy.sh v1 ue >/log/ue.log", out)
	assert.Equal(t, DefaultShell, tmpl.Shell)
}

func TestTemplate_LiteralShellSyntax(t *testing.T) {
	t.Parallel()

	tmpl, err := ParseTemplate("head", "bash", "sudo -u ${user} -Hi /bin/sh -c 'a >> /x 2>&1'", VarUser)
	require.NoError(t, err)

	out, err := tmpl.Render(map[string]string{VarUser: "`geni-get user_urn | cut -f4 -d+`"})
	require.NoError(t, err)
	assert.Equal(t, "sudo -u `geni-get user_urn | cut -f4 -d+` -Hi /bin/sh -c 'a >> /x 2>&1'", out)
}

func TestParseTemplate_UnknownVariable(t *testing.T) {
	t.Parallel()

	_, err := ParseTemplate("head", "", "echo ${ref}", VarUser)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `command "head" references unknown variables ref (available: user)`)
}

func TestTemplate_RenderMissingVariable(t *testing.T) {
	t.Parallel()

	tmpl, err := ParseTemplate("head", "", "echo ${user}", VarUser)
	require.NoError(t, err)

	_, err = tmpl.Render(map[string]string{})
	require.Error(t, err)
}
