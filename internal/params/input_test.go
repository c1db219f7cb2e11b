package params

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestParseFile(t *testing.T) {
	t.Parallel()

	src := `
		hardware_type      = "d740"
		deploy_from_source = false
		enable_ric_xapp    = true
	`
	raw, err := ParseFile([]byte(src), "params.hcl")
	require.NoError(t, err)

	assert.Equal(t, []string{DeployFromSource, EnableRICxApp, HardwareType}, raw.Names())
	assert.True(t, raw[HardwareType].RawEquals(cty.StringVal("d740")))
	assert.True(t, raw[DeployFromSource].RawEquals(cty.False))
}

func TestParseFile_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{name: "syntax error", src: `hardware_type = `, wantErr: "failed to parse parameter file"},
		{name: "blocks are not parameters", src: "node {\n}\n", wantErr: "may only contain attributes"},
		{name: "variables are not allowed", src: `hardware_type = var.hw`, wantErr: "failed to evaluate parameter file"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseFile([]byte(tc.src), "params.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "params.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`enable_remote_display = false`), 0o600))

	raw, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, raw[EnableRemoteDisplay].RawEquals(cty.False))

	_, err = LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.hcl"))
	require.Error(t, err)
}

func TestParseAssignments(t *testing.T) {
	t.Parallel()

	raw, err := ParseAssignments([]string{"hardware_type=d740", " enable_ric_xapp =true", "label=a=b"})
	require.NoError(t, err)
	assert.True(t, raw[HardwareType].RawEquals(cty.StringVal("d740")))
	assert.True(t, raw[EnableRICxApp].RawEquals(cty.StringVal("true")))
	assert.True(t, raw["label"].RawEquals(cty.StringVal("a=b")))

	_, err = ParseAssignments([]string{"novalue"})
	require.ErrorIs(t, err, ErrInvalidAssignment)
	_, err = ParseAssignments([]string{"=x"})
	require.Error(t, err)
}

func TestRaw_Merge(t *testing.T) {
	t.Parallel()

	file := Raw{HardwareType: cty.StringVal("d430"), DeployFromSource: cty.True}
	flags := Raw{HardwareType: cty.StringVal("d740")}

	merged := file.Merge(flags)
	assert.True(t, merged[HardwareType].RawEquals(cty.StringVal("d740")))
	assert.True(t, merged[DeployFromSource].RawEquals(cty.True))
	assert.True(t, file[HardwareType].RawEquals(cty.StringVal("d430")), "merge must not mutate the receiver")
}
