package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	assert.NotEqual(t, ErrMissingNumerologyService.Error(), ErrInvalidPorts.Error())
}

func TestErrMissingNumerologyService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingNumerologyService.Error(), "numerology service")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
