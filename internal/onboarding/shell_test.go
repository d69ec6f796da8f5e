package onboarding

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapWithoutBackButton(t *testing.T) {
	page := Shell{Title: "Welcome"}.Wrap(map[string]string{"step": "welcome"})

	raw, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"shell":{"title":"Welcome","back_button":false},"content":{"step":"welcome"}}`, string(raw))
}

func TestWrapWithBackButton(t *testing.T) {
	page := Shell{Title: "Profile", BackPath: "/welcome"}.Wrap(nil)

	assert.True(t, page.Shell.BackButton)
	assert.Equal(t, "/welcome", page.Shell.BackPath)
	assert.Nil(t, page.Content)
}

func TestShellFor(t *testing.T) {
	welcome, ok := ShellFor("welcome")
	require.True(t, ok)
	assert.False(t, welcome.View().BackButton)

	profile, ok := ShellFor("profile")
	require.True(t, ok)
	assert.Equal(t, "/welcome", profile.BackPath)

	_, ok = ShellFor("missing")
	assert.False(t, ok)
}
