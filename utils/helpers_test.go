package utils

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.vert")
	require.NoError(t, os.WriteFile(path, []byte("#version 410 core\nvoid main() {}\n"), 0o644))

	body, err := ReadTextFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#version 410 core\nvoid main() {}\n", body)

	_, err = ReadTextFile(filepath.Join(t.TempDir(), "missing.frag"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestJitterRange(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 1000; i++ {
		v := Jitter(rng, 1.5, 0.25)
		assert.True(t, v > 1.25 && v <= 1.75, "got %v", v)
	}
}
