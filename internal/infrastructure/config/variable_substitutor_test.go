package config

import (
	"testing"

	"github.com/petersen65/CppPlayground/internal/domain/entities"
	"github.com/petersen65/CppPlayground/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariableSubstitutor_Substitute(t *testing.T) {
	profile := &entities.Profile{
		Vars: map[string]any{
			"variant": "Release",
			"toolset": map[string]any{"gcc": uint64(14)},
		},
		Settings: values.Settings{
			"build_type":       "{{ .vars.variant }}",
			"compiler.version": "{{.vars.toolset.gcc}}",
			"os":               "Linux",
		},
	}

	require.NoError(t, NewVariableSubstitutor().Substitute(profile))
	assert.Equal(t, "Release", profile.Settings.Get("build_type"))
	assert.Equal(t, "14", profile.Settings.Get("compiler.version"))
	assert.Equal(t, "Linux", profile.Settings.Get("os"))
}

func TestVariableSubstitutor_Errors(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]any
		value   string
		wantErr string
	}{
		{name: "missing", vars: nil, value: "{{ .vars.nope }}", wantErr: "variable not found: nope"},
		{name: "not a map", vars: map[string]any{"a": "x"}, value: "{{ .vars.a.b }}", wantErr: "not a map"},
		{name: "not scalar", vars: map[string]any{"a": map[string]any{"b": "c"}}, value: "{{ .vars.a }}", wantErr: "not a scalar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := &entities.Profile{Vars: tt.vars, Settings: values.Settings{"os": tt.value}}
			err := NewVariableSubstitutor().Substitute(profile)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "setting os")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
