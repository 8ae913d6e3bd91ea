package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-user-auth/internal/logger"
	"github.com/MKhiriev/go-user-auth/models"
)

func newTestRoleRepo(t *testing.T) (*roleRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &roleRepository{db: db, logger: logger.Nop()}, mock
}

func TestRoleFindByName(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newTestRoleRepo(t)
		mock.ExpectQuery(`SELECT id, name, code, description FROM roles WHERE name = \$1`).
			WithArgs("Admin").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "description"}).
				AddRow(1, "Admin", "ADMIN", nil))

		role, err := repo.FindByName(context.Background(), "Admin")
		require.NoError(t, err)
		assert.Equal(t, models.Role{ID: 1, Name: "Admin", Code: "ADMIN"}, role)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newTestRoleRepo(t)
		mock.ExpectQuery("FROM roles").
			WithArgs("Nope").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByName(context.Background(), "Nope")
		require.ErrorIs(t, err, ErrRoleNotFound)
	})
}

func TestRoleInsertIfAbsent(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "inserted", affected: 1, want: true},
		{name: "already present", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestRoleRepo(t)
			mock.ExpectExec(`INSERT INTO roles \(name,code,description\) VALUES \(\$1,\$2,\$3\) ON CONFLICT \(name\) DO NOTHING`).
				WithArgs("User", "USER", sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			got, err := repo.InsertIfAbsent(context.Background(), models.Role{Name: "User", Code: "USER"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleList(t *testing.T) {
	repo, mock := newTestRoleRepo(t)
	desc := "Administrator"

	mock.ExpectQuery(`SELECT id, name, code, description FROM roles ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "code", "description"}).
			AddRow(1, "Admin", "ADMIN", desc).
			AddRow(2, "User", "USER", nil))

	roles, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "Admin", roles[0].Name)
	require.NotNil(t, roles[0].Description)
	assert.Equal(t, desc, *roles[0].Description)
	assert.Nil(t, roles[1].Description)
}
