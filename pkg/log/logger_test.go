package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewLevel(t *testing.T) {
	assert.True(t, New("debug").Core().Enabled(zap.DebugLevel))
	assert.False(t, New("").Core().Enabled(zap.DebugLevel))
	assert.True(t, New("").Core().Enabled(zap.InfoLevel))
	// 无法解析时退回 info
	assert.False(t, New("verbose").Core().Enabled(zap.DebugLevel))
	assert.False(t, New("error").Core().Enabled(zap.WarnLevel))
}
