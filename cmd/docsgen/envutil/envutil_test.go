package envutil

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestBool(t *testing.T) {
	t.Setenv("DOCSGEN_TEST_BOOL", "true")
	assert.Equal(t, true, Bool("DOCSGEN_TEST_BOOL", false))
	t.Setenv("DOCSGEN_TEST_BOOL", "nope")
	assert.Equal(t, true, Bool("DOCSGEN_TEST_BOOL", true))
	assert.Equal(t, false, Bool("DOCSGEN_TEST_BOOL_UNSET", false))
}

func TestString(t *testing.T) {
	t.Setenv("DOCSGEN_TEST_STRING", "")
	assert.Equal(t, "", String("DOCSGEN_TEST_STRING", "default"))
	assert.Equal(t, "default", String("DOCSGEN_TEST_STRING_UNSET", "default"))
}

func TestInt(t *testing.T) {
	t.Setenv("DOCSGEN_TEST_INT", "4")
	assert.Equal(t, 4, Int("DOCSGEN_TEST_INT", 8))
	t.Setenv("DOCSGEN_TEST_INT", "four")
	assert.Equal(t, 8, Int("DOCSGEN_TEST_INT", 8))
}
