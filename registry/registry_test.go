package registry

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoin(t *testing.T) {
	tests := []struct {
		parts []string
		want  string
	}{
		{nil, ""},
		{[]string{"SOFTWARE"}, "SOFTWARE"},
		{[]string{`SOFTWARE\`, `\GOG.com`, "", "Games"}, `SOFTWARE\GOG.com\Games`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Join(tt.parts...))
	}
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"SOFTWARE", "GOG.com", "Games"}, Split(`\SOFTWARE\\GOG.com/Games\`))
	assert.Empty(t, Split(`\`))
}

func TestTrimHive(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`HKEY_LOCAL_MACHINE\SOFTWARE\GOG.com`, `SOFTWARE\GOG.com`},
		{`hklm\SOFTWARE`, `SOFTWARE`},
		{`HKLM`, ``},
		{`SOFTWARE\HKLM`, `SOFTWARE\HKLM`},
		{`HKEY_CURRENT_USER\Software`, `HKEY_CURRENT_USER\Software`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TrimHive(tt.in), tt.in)
	}
}

func TestError_Is(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("wrapped: %w", newError(ErrKindAccess, "registry: open", cause))

	require.ErrorIs(t, err, ErrAccess)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, ErrNotFound)
	require.Equal(t, "wrapped: registry: open: boom", err.Error())

	var re *Error
	require.ErrorAs(t, err, &re)
	require.Equal(t, ErrKindAccess, re.Kind)
	require.Equal(t, "access denied", re.Kind.String())
}
