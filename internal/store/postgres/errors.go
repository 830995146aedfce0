package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/agentstation/toolmap/pkg/errors"
)

const service = "postgres"

// classify maps driver failures onto the toolmap error types.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("%s: %w", op, errors.ErrNotFound)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w: %w", op, errors.ErrCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w: %w", op, errors.ErrTimeout, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "22P02", "22001", "23502":
			// invalid_text_representation, string_data_right_truncation, not_null_violation
			return errors.WrapValidation(pgErr.ColumnName, pgErr)
		case "23505", "23503":
			// unique_violation, foreign_key_violation
			return errors.NewResourceError(op, "tool", pgErr.ConstraintName, err)
		case "42P01":
			// undefined_table
			return &errors.NotFoundError{Resource: "table", ID: pgErr.TableName}
		case "28P01", "28000", "3D000":
			// invalid_password, invalid_authorization_specification, invalid_catalog_name
			return errors.NewConfigError("database_url", pgErr.Message, err)
		}
		return &errors.APIError{
			Service:  service,
			Endpoint: op,
			Message:  fmt.Sprintf("%s (SQLSTATE %s)", pgErr.Message, pgErr.Code),
			Err:      err,
		}
	}

	return errors.WrapAPI(service, 0, fmt.Errorf("%s: %w", op, err))
}
