package cryptox

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for range 500 {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)

		seen[code] = struct{}{}
	}

	// 500 draws over 900k values should essentially never all collide.
	require.Greater(t, len(seen), 400)
}
