package service

import "errors"

// Domain failures surfaced to handlers. Every operation either fully
// succeeds or fails with none of its effects applied; there is no
// partial-commit path and no retry (operations are local and deterministic).
var (
	// ErrValidacion: missing required field, non-positive numeric input, empty name.
	ErrValidacion = errors.New("datos de entrada no válidos")
	// ErrPuntosInsuficientes: redemption requires a balance of at least 100 points.
	ErrPuntosInsuficientes = errors.New("el cliente no tiene puntos suficientes")
	// ErrNoEliminable: opportunities can only be deleted in estado "descartado".
	ErrNoEliminable = errors.New("solo se pueden eliminar oportunidades descartadas")
	// ErrSinTelefono blocks the WhatsApp contact channel.
	ErrSinTelefono = errors.New("el cliente no tiene teléfono registrado")
	// ErrSinEmail blocks the email contact channel.
	ErrSinEmail = errors.New("el cliente no tiene email registrado")
)
