package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInTransaction(t *testing.T) {
	errInsert := errors.New("violação de constraint")

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		fn      func(q Queryer) error
		wantErr error
	}{
		{
			name: "confirma quando fn não falha",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("DELETE FROM snapshot_metrics").WillReturnResult(sqlmock.NewResult(0, 3))
				mock.ExpectCommit()
			},
			fn: func(q Queryer) error {
				_, err := q.ExecContext(context.Background(), "DELETE FROM snapshot_metrics WHERE snapshot_id = $1", "snap-1")
				return err
			},
		},
		{
			name: "desfaz quando fn falha",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn:      func(Queryer) error { return errInsert },
			wantErr: errInsert,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setup(mock)

			err = NewFromDB(db).RunInTransaction(context.Background(), tt.fn)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRunInTransaction_PanicDesfazEPropaga(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "falhou", func() {
		_ = NewFromDB(db).RunInTransaction(context.Background(), func(Queryer) error {
			panic("falhou")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_FalhaNoBegin(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("conexão recusada"))

	err = NewFromDB(db).RunInTransaction(context.Background(), func(Queryer) error { return nil })

	assert.ErrorContains(t, err, "erro ao iniciar transação")
}
