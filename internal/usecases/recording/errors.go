package recording

import (
	"fmt"
	"strings"
)

// ValidationError descreve uma falha de validação de entrada, campo a campo.
// É esperado e voltado ao usuário; nunca derruba o processo.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

func newValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}
