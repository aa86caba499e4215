package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDocumentType(t *testing.T) {
	var v Validator

	for _, code := range []string{"3", "5", "10", "46"} {
		assert.NoError(t, v.ValidateDocumentType(code), "código %s", code)
	}
	for _, code := range []string{"", "1", "99", "CC"} {
		assert.Error(t, v.ValidateDocumentType(code), "código %s", code)
	}
}

func TestValidateDocumentNumber(t *testing.T) {
	var v Validator

	assert.NoError(t, v.ValidateDocumentNumber("AB123456"))
	assert.NoError(t, v.ValidateDocumentNumber("AB-123 456"))

	assert.Error(t, v.ValidateDocumentNumber(""))
	assert.Error(t, v.ValidateDocumentNumber("A1"))
	assert.Error(t, v.ValidateDocumentNumber("1234567890123456"))
	assert.Error(t, v.ValidateDocumentNumber("AB_12345!"))
}

func TestValidateName(t *testing.T) {
	var v Validator

	assert.NoError(t, v.ValidateName("García", "primer apellido"))
	assert.NoError(t, v.ValidateName("O'Brien", "primer apellido"))
	assert.NoError(t, v.ValidateName("Ñáñez-Muñoz", "primer apellido"))

	assert.Error(t, v.ValidateName("", "primer apellido"))
	assert.Error(t, v.ValidateName("Garc1a", "primer apellido"))
}

func TestValidateMovementType(t *testing.T) {
	var v Validator

	assert.NoError(t, v.ValidateMovementType("E"))
	assert.NoError(t, v.ValidateMovementType("s"))
	assert.NoError(t, v.ValidateMovementType(" e "))
	assert.Error(t, v.ValidateMovementType("X"))
	assert.Error(t, v.ValidateMovementType(""))
}

func TestValidationErrorsAreDistinguishable(t *testing.T) {
	var v Validator

	err := v.ValidateDocumentType("99")
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
