package util

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRandomName(t *testing.T) {
	random = rand.New(rand.NewSource(0)) // nolint:gosec

	a := assert.New(t)
	name := GetRandomName()
	parts := strings.SplitN(name, " ", 2)
	if a.Equal(2, len(parts)) {
		a.Contains(adjectives, parts[0])
		a.Contains(nicknames, parts[1])
	}

	// the source decides the name
	random = rand.New(rand.NewSource(0)) // nolint:gosec
	a.Equal(name, GetRandomName())
}

func TestGetUniqueRandomName(t *testing.T) {
	taken := make(map[string]bool)
	for _, adjective := range adjectives {
		for _, nickname := range nicknames {
			taken[adjective+" "+nickname] = true
		}
	}

	name := GetUniqueRandomName(taken)
	assert.False(t, taken[name])
	assert.True(t, strings.HasSuffix(name, " 2"))
}
