package snapshotting

import "errors"

var (
	ErrSnapshotNotFound  = errors.New("snapshot não encontrado")
	ErrInvalidStatus     = errors.New("status de snapshot inválido")
	ErrInvalidTransition = errors.New("transição de status não permitida")
	ErrSnapshotClosed    = errors.New("snapshot já finalizado")
	ErrInvalidScope      = errors.New("escopo de snapshot inválido")
)
