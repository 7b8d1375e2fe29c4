package golden

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertJSON(t *testing.T) {
	obj := map[string]interface{}{"pot": 30, "players": []string{"You", "Bot1"}}

	// the first call records, a second call in the same test uses the next file
	assert.True(t, AssertJSON(t, obj, 0))
	assert.True(t, AssertJSON(t, []int{1, 2, 3}, 0))
}

func TestAssertJSON_depth(t *testing.T) {
	helper := func(obj interface{}) bool {
		return AssertJSON(t, obj, 1)
	}

	assert.True(t, helper("from a helper"))
}
