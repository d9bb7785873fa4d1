package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEnvValue(t *testing.T) {
	t.Setenv("ECHOWEATHER_TEST_KEY", "value")

	assert.Equal(t, "value", ResolveEnvValue("${ECHOWEATHER_TEST_KEY}"))
	assert.Equal(t, "", ResolveEnvValue("${ECHOWEATHER_TEST_UNSET}"))
	assert.Equal(t, "literal", ResolveEnvValue("literal"))
	assert.Equal(t, "{NOT_A_REF}", ResolveEnvValue("{NOT_A_REF}"))
}
