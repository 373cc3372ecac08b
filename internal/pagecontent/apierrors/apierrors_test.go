package apierrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithFormattedMessage(t *testing.T) {
	e := ErrUnknownCommand.WithFormattedMessage("toggleBold")
	assert.Equal(t, "unknown command toggleBold", e.Error())
	assert.Equal(t, "Неизвестная команда toggleBold", e.RuErr)
	assert.Equal(t, ErrUnknownCommand.Code, e.Code)

	e = ErrSchemaViolation.WithFormattedMessage()
	assert.Equal(t, "document does not match schema", e.Err)
}

func TestDefinedErrorAs(t *testing.T) {
	err := fmt.Errorf("save: %w", ErrVersionConflict)

	var de DefinedError
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, 409, de.StatusCode)
	assert.True(t, errors.Is(err, ErrVersionConflict))
}
