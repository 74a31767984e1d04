package logger_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	"github.com/pharaujojr/dashboard-karin/pkg/logger"
)

func TestNew_AplicaNivelYRedirigeGlobal(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "warn"})

	assert.False(t, l.Debug().Enabled())
	assert.True(t, l.Warn().Enabled())
	assert.Equal(t, zerolog.WarnLevel, log.Logger.GetLevel(),
		"el logger global queda redirigido con el mismo nivel")
}

func TestNew_NivelDesconocidoCaeAInfo(t *testing.T) {
	l := logger.New(logger.Config{Env: "production", Level: "verboso"})

	assert.True(t, l.Info().Enabled())
	assert.False(t, l.Debug().Enabled())
}
