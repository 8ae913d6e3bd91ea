package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-user-auth/internal/config"
	"github.com/MKhiriev/go-user-auth/internal/logger"
	"github.com/MKhiriev/go-user-auth/migrations"
)

const (
	defaultMaxRetries = 3
	defaultRetryBase  = 50 * time.Millisecond
)

// dialect captures what differs between the supported databases above the
// driver: bind-parameter style and migration set.
type dialect struct {
	driver      string
	placeholder sq.PlaceholderFormat
	goose       string
}

var (
	postgresDialect = dialect{driver: config.DriverPostgres, placeholder: sq.Dollar, goose: migrations.DialectPostgres}
	sqliteDialect   = dialect{driver: config.DriverSQLite, placeholder: sq.Question, goose: migrations.DialectSQLite}
)

// ErrorClassificator maps driver-specific errors onto the categories the
// repositories act upon.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}

// DB is a database/sql pool bound to one dialect and its error classifier.
type DB struct {
	*sql.DB
	dialect            dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger

	maxRetries uint64
	retryBase  time.Duration
}

// NewConnect opens the database described by cfg using the matching driver.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

func newDB(conn *sql.DB, d dialect, classificator ErrorClassificator, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		dialect:            d,
		errorClassificator: classificator,
		logger:             log,
		maxRetries:         defaultMaxRetries,
		retryBase:          defaultRetryBase,
	}
}

// Migrate applies the embedded schema for the connection's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.dialect.goose)
}

// Driver returns the database/sql driver name of the connection.
func (db *DB) Driver() string {
	return db.dialect.driver
}

func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.dialect.placeholder)
}

// withRetry runs fn and repeats it with exponential backoff while the
// classifier reports the failure as transient. Only idempotent reads go
// through here.
func (db *DB) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(db.maxRetries, retry.NewExponential(db.retryBase))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && db.errorClassificator.Classify(err) == Retryable {
			logger.FromContext(ctx).Warn().Err(err).Msg("transient database error, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
}
