package utils

import (
	"fmt"
	"math/rand"
	"os"
)

// ReadTextFile returns the whole file as a string.
func ReadTextFile(path string) (string, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(body), nil
}

// Jitter returns value shifted by a uniform amount in (-scale, scale].
func Jitter(rng *rand.Rand, value, scale float32) float32 {
	random := rng.Float32() * scale * 2
	shift := scale - random
	return shift + value
}
