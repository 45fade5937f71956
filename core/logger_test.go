package core

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.morpionai.com/account/config"
)

func TestNewLoggerWithoutConfig(t *testing.T) {
	logger := NewLogger(nil)
	require.NotNil(t, logger)
	logger.Debug("no config manager")
}

func TestNewLoggerNilManagerPointer(t *testing.T) {
	// A failed config.NewManager hands back a nil *ManagerDefault, which is
	// a non-nil config.Manager once it crosses the interface boundary.
	var cm *config.ManagerDefault

	require.NotPanics(t, func() {
		logger := NewLogger(cm)
		require.NotNil(t, logger)
	})
}
