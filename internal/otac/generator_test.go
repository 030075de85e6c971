package otac

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator_LengthValidation(t *testing.T) {
	_, err := NewGenerator(0, 30000)
	assert.Error(t, err)

	// 52 symbols need 260 bits, more than SHA-256 provides
	_, err = NewGenerator(52, 30000)
	assert.Error(t, err)

	// 51 symbols consume exactly 255 bits
	_, err = NewGenerator(51, 30000)
	assert.NoError(t, err)

	_, err = NewGenerator(8, 0)
	assert.Error(t, err)
}

func TestGenerate_Deterministic(t *testing.T) {
	g, err := NewGenerator(DefaultLength, 30000)
	require.NoError(t, err)

	secret := []byte("topsecret")
	first := g.Generate(secret, 12345)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, g.Generate(secret, 12345))
	}
}

func TestGenerate_VariesWithWindowAndSecret(t *testing.T) {
	g, err := NewGenerator(DefaultLength, 30000)
	require.NoError(t, err)

	secret := []byte("topsecret")
	assert.NotEqual(t, g.Generate(secret, 1), g.Generate(secret, 2))
	assert.NotEqual(t, g.Generate(secret, 1), g.Generate([]byte("other"), 1))
}

func TestGenerate_CodeShape(t *testing.T) {
	g, err := NewGenerator(DefaultLength, 30000)
	require.NoError(t, err)

	code := g.Generate([]byte("topsecret"), 99)
	assert.Len(t, code, DefaultLength)
	for _, c := range code {
		assert.Contains(t, string(alphabet[:]), string(c))
	}
	// characters that must never appear
	for _, banned := range []string{"I", "N", "O", "V"} {
		assert.False(t, strings.Contains(code, banned), "code %q contains banned symbol %s", code, banned)
	}
}

func TestWindow(t *testing.T) {
	g, err := NewGenerator(DefaultLength, 30000)
	require.NoError(t, err)

	assert.Equal(t, int64(2), g.Window(60000, 0))
	assert.Equal(t, int64(1), g.Window(60000, -1))
	assert.Equal(t, int64(2), g.Window(89999, 0), "windows are stable within one step")
}
