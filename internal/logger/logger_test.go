package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Production(t *testing.T) {
	log, err := New("production")
	require.NoError(t, err)
	require.NotNil(t, log)

	assert.NotPanics(t, func() {
		log.Info("test message")
	})
}

func TestNew_Development(t *testing.T) {
	log, err := New("development")
	require.NoError(t, err)
	require.NotNil(t, log)

	assert.NotPanics(t, func() {
		log.Debug("test message")
	})
}

func TestNewWithDefaults_NeverNil(t *testing.T) {
	log := NewWithDefaults()
	require.NotNil(t, log)

	assert.NotPanics(t, func() {
		log.Info("test message")
	})
}
