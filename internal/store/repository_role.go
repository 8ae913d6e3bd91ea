package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-user-auth/internal/logger"
	"github.com/MKhiriev/go-user-auth/models"
)

// roleRepository is the SQL implementation of [RoleRepository].
type roleRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRoleRepository constructs a [RoleRepository] backed by db.
func NewRoleRepository(db *DB, logger *logger.Logger) RoleRepository {
	logger.Debug().Msg("creating role repository")
	return &roleRepository{
		db:     db,
		logger: logger,
	}
}

func (r *roleRepository) FindByName(ctx context.Context, name string) (models.Role, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectRoleByNameQuery(r.db.builder(), name)
	if err != nil {
		log.Err(err).Str("func", "*roleRepository.FindByName").Msg("error building query")
		return models.Role{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var role models.Role
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		role, scanErr = scanRole(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Role{}, ErrRoleNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*roleRepository.FindByName").Msg("error finding role")
		return models.Role{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return role, nil
}

// InsertIfAbsent inserts role unless its name is already taken. The returned
// flag is true only when a new row was written.
func (r *roleRepository) InsertIfAbsent(ctx context.Context, role models.Role) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertRoleIfAbsentQuery(r.db.builder(), role)
	if err != nil {
		log.Err(err).Str("func", "*roleRepository.InsertIfAbsent").Msg("error building query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*roleRepository.InsertIfAbsent").Msg("error inserting role")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*roleRepository.InsertIfAbsent").Msg("error reading affected rows")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected > 0, nil
}

func (r *roleRepository) List(ctx context.Context) ([]models.Role, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRolesQuery(r.db.builder())
	if err != nil {
		log.Err(err).Str("func", "*roleRepository.List").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var roles []models.Role
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		roles = roles[:0]
		for rows.Next() {
			role, err := scanRole(rows)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, err)
			}
			roles = append(roles, role)
		}
		if err = rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*roleRepository.List").Msg("error listing roles")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return roles, nil
}

func scanRole(row rowScanner) (models.Role, error) {
	var (
		role models.Role
		desc sql.NullString
	)
	if err := row.Scan(&role.ID, &role.Name, &role.Code, &desc); err != nil {
		return models.Role{}, err
	}
	role.Description = nullStringPtr(desc)
	return role, nil
}
