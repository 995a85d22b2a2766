package refreshing

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownRefreshType = errors.New("tipo de atualização desconhecido")
	ErrRefreshInProgress  = errors.New("já existe uma atualização em andamento para este escopo")
)

// RefreshError indica em qual etapa a execução falhou. O snapshot já foi marcado como failed.
type RefreshError struct {
	Stage      string
	SnapshotID string
	Err        error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("atualização %s falhou: %v", e.SnapshotID, e.Err)
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}
