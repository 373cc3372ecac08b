package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseErrors(t *testing.T) {
	rows, err := parseErrors("../../internal/pagecontent/apierrors/apierrors.go")
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	assert.Equal(t, errorRow{
		Code:   "1000",
		Status: "StatusInternalServerError",
		Err:    "internal error",
		RuErr:  "Внутренняя ошибка сервера",
	}, rows[0])

	var notFound *errorRow
	for i := range rows {
		if rows[i].Code == "2001" {
			notFound = &rows[i]
		}
	}
	require.NotNil(t, notFound)
	assert.Equal(t, "StatusNotFound", notFound.Status)
}

func TestWriteDocs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeDocs(&buf, []errorRow{
		{Code: "3001", Status: "StatusUnprocessableEntity", Err: "document does not match schema: %s", RuErr: "Документ не соответствует схеме: %s"},
	}))

	out := buf.String()
	assert.Contains(t, out, "# Перечень кодов ошибок")
	assert.Contains(t, out, "**3001**")
	assert.Contains(t, out, "422")
	assert.Contains(t, out, "`document does not match schema: %s`")
}
