package postgres_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repo "github.com/kanenguyen264/library-management-sub008/internal/auth/repository/postgres"
	"github.com/kanenguyen264/library-management-sub008/internal/observability"
)

func TestAuthEventRecorder(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewAuthEventRecorder(mock, observability.NewLogger())
	ctx := context.Background()

	t.Run("success event", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO auth_events").
			WithArgs("user-1", nil, "1.2.3.4", "ua", true, nil, []byte(nil)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		r.RecordAuthSuccess(ctx, "user-1", "1.2.3.4", "ua", nil)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure event with details", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO auth_events").
			WithArgs(nil, "alice", "1.2.3.4", "ua", false, "invalid_password",
				[]byte(`{"user_id":"user-1"}`)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		r.RecordAuthFailure(ctx, "alice", "1.2.3.4", "invalid_password", "ua",
			map[string]string{"user_id": "user-1"})

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error is swallowed", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO auth_events").
			WithArgs("user-1", nil, "1.2.3.4", "ua", true, nil, []byte(nil)).
			WillReturnError(fmt.Errorf("db error"))

		// Must not panic and has no error to return.
		r.RecordAuthSuccess(ctx, "user-1", "1.2.3.4", "ua", nil)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
