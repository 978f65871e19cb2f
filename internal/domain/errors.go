package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrInvalidAmount   = errors.New("monto inválido")
	ErrInvalidVATRate  = errors.New("porcentaje de IVA no soportado")
	ErrMissingDocument = errors.New("falta el documento PDF")
	ErrOverpayment     = errors.New("el pago es mayor que el restante")
	ErrAlreadyPaid     = errors.New("la factura ya está pagada")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrStore           = errors.New("error del almacén de datos")
)

// StoreFailure envuelve un fallo de lectura/escritura/subida/firma del almacén.
// errors.Is funciona tanto contra ErrStore como contra la causa original.
func StoreFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}

// IsValidation indica si err es un error de validación (rechazado antes de escribir).
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidVATRate) ||
		errors.Is(err, ErrMissingDocument) ||
		errors.Is(err, ErrOverpayment) ||
		errors.Is(err, ErrAlreadyPaid)
}
