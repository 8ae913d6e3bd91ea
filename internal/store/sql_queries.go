package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-user-auth/models"
)

const (
	usersTable = "users u"
	rolesTable = "roles"

	joinUserRole = "roles r ON r.id = u.role_id"
)

// userColumns are scanned by scanUser in this exact order.
var userColumns = []string{
	"u.id",
	"u.username",
	"u.email",
	"u.password_hash",
	"u.first_name",
	"u.last_name",
	"u.company",
	"u.created_at",
	"u.updated_at",
	"r.id",
	"r.name",
	"r.code",
	"r.description",
}

// roleColumns are scanned by scanRole in this exact order.
var roleColumns = []string{"id", "name", "code", "description"}

// buildSelectUserQuery selects a single user with its role joined.
func buildSelectUserQuery(b sq.StatementBuilderType, where sq.Sqlizer) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		LeftJoin(joinUserRole).
		Where(where).
		Limit(1).
		ToSql()
}

func buildExistsUserQuery(b sq.StatementBuilderType, username, email string) (string, []any, error) {
	return b.Select("COUNT(1)").
		From("users").
		Where(sq.Or{
			sq.Eq{"username": username},
			sq.Eq{"email": email},
		}).
		ToSql()
}

// buildInsertUserQuery inserts user and returns the generated id.
// Timestamps come from the caller so that both dialects store the same value.
func buildInsertUserQuery(b sq.StatementBuilderType, user models.User, roleID *int64) (string, []any, error) {
	return b.Insert("users").
		Columns(
			"username",
			"email",
			"password_hash",
			"first_name",
			"last_name",
			"company",
			"role_id",
			"created_at",
			"updated_at",
		).
		Values(
			user.Username,
			user.Email,
			user.PasswordHash,
			user.FirstName,
			user.LastName,
			user.Company,
			roleID,
			user.CreatedAt,
			user.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
}

func buildUpdatePasswordHashQuery(b sq.StatementBuilderType, id int64, passwordHash string, updatedAt time.Time) (string, []any, error) {
	return b.Update("users").
		Set("password_hash", passwordHash).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildSelectRoleByNameQuery(b sq.StatementBuilderType, name string) (string, []any, error) {
	return b.Select(roleColumns...).
		From(rolesTable).
		Where(sq.Eq{"name": name}).
		Limit(1).
		ToSql()
}

// buildInsertRoleIfAbsentQuery relies on the UNIQUE constraint on roles.name;
// both PostgreSQL and SQLite understand the ON CONFLICT clause.
func buildInsertRoleIfAbsentQuery(b sq.StatementBuilderType, role models.Role) (string, []any, error) {
	return b.Insert(rolesTable).
		Columns("name", "code", "description").
		Values(role.Name, role.Code, role.Description).
		Suffix("ON CONFLICT (name) DO NOTHING").
		ToSql()
}

func buildListRolesQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(roleColumns...).
		From(rolesTable).
		OrderBy("id").
		ToSql()
}
