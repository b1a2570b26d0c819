package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBindingValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

func TestHandleValidationErrorPerField(t *testing.T) {
	v := newBindingValidator()
	err := v.Struct(AttendanceRequest{Entries: []AttendanceEntry{{StudentID: 0}}})
	require.Error(t, err)

	detail := HandleValidationError(err)
	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	assert.Equal(t, ErrorSeverityError, detail.Severity)
	assert.Equal(t, "studentID", detail.Field)

	fields, ok := detail.Details.([]ErrorDetail)
	require.True(t, ok)
	require.Len(t, fields, 1)
	assert.Equal(t, "studentID is required", fields[0].Message)
}

func TestHandleValidationErrorMalformedBody(t *testing.T) {
	detail := HandleValidationError(errors.New("unexpected EOF"))
	assert.Equal(t, "Invalid request format", detail.Message)
	assert.Equal(t, "unexpected EOF", detail.Details)
	assert.Empty(t, detail.Field)
}

func TestAttendanceRequestAllowsEmptyEntries(t *testing.T) {
	v := newBindingValidator()

	var req AttendanceRequest
	require.NoError(t, json.Unmarshal([]byte(`{"entries": []}`), &req))
	assert.NoError(t, v.Struct(req))

	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	req.Entries = nil
	assert.Error(t, v.Struct(req))
}
