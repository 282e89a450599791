//go:build !windows

package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenLive_Unsupported(t *testing.T) {
	_, err := OpenLive()
	require.ErrorIs(t, err, ErrUnsupported)

	var s LiveStore
	_, err = s.OpenKey(`SOFTWARE`)
	require.ErrorIs(t, err, ErrUnsupported)
}
