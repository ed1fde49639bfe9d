package debug

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestEnableDisable(t *testing.T) {
	t.Setenv(envDebug, "")
	defer logrus.SetLevel(logrus.InfoLevel)

	Enable()
	assert.True(t, IsEnabled())
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	Disable()
	assert.False(t, IsEnabled())
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestIsEnabledFromEnv(t *testing.T) {
	tests := map[string]bool{
		"":      false,
		"0":     false,
		"false": false,
		"FALSE": false,
		"1":     true,
		"true":  true,
		"yes":   true,
	}
	for value, want := range tests {
		t.Setenv(envDebug, value)
		assert.Equal(t, want, IsEnabled(), value)
	}
}
