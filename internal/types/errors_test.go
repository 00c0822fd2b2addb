package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKilnError_Error(t *testing.T) {
	err := NewError(GOAL_NOT_FOUND, "could not find goal summary")
	assert.Equal(t, "[GOAL_NOT_FOUND] could not find goal summary", err.Error())

	wrapped := WrapError(REPORT_BUILD_FAILED, "failed to get report", errors.New("boom"))
	assert.Equal(t, "[REPORT_BUILD_FAILED] failed to get report: boom", wrapped.Error())
}

func TestKilnError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapError(MANIFEST_LOAD_FAILED, "read failed", cause)

	assert.ErrorIs(t, err, cause)
}

func TestKilnError_IsMatchesByCode(t *testing.T) {
	err := NewErrorf(PLUGIN_NOT_FOUND, "plugin %s is not installed", "g:a")

	assert.ErrorIs(t, err, NewError(PLUGIN_NOT_FOUND, "anything"))
	assert.NotErrorIs(t, err, NewError(GOAL_NOT_FOUND, "anything"))
}

func TestIsCode(t *testing.T) {
	inner := NewError(VERSION_NOT_INSTALLED, "no versions")
	outer := WrapError(VERSION_RESOLUTION_FAILED, "resolution failed", inner)
	plain := fmt.Errorf("wrapped again: %w", outer)

	assert.True(t, IsCode(outer, VERSION_RESOLUTION_FAILED))
	assert.True(t, IsCode(plain, VERSION_RESOLUTION_FAILED), "IsCode sees through plain wrapping")
	assert.False(t, IsCode(outer, VERSION_NOT_INSTALLED), "the outermost code wins")
	assert.False(t, IsCode(errors.New("plain"), VERSION_RESOLUTION_FAILED))
	assert.False(t, IsCode(nil, VERSION_RESOLUTION_FAILED))
}

func TestNewPluginKey(t *testing.T) {
	key := NewPluginKey("org.kiln.plugins", "kiln-summary-plugin")
	assert.Equal(t, "org.kiln.plugins:kiln-summary-plugin", key.String())
}

func TestID_RoundTrip(t *testing.T) {
	id := NewID()
	assert.False(t, id.IsZero())

	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseID("not-a-uuid")
	assert.Error(t, err)
}
