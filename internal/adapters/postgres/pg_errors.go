package postgres_adapter

import (
	"errors"

	"real-estate-system/internal/core/port"

	"github.com/jackc/pgx/v5/pgconn"
)

// queryCanceled - SQLSTATE 57014, statement_timeout или отмена клиентом.
const queryCanceled = "57014"

// pgErrorFields достает из ошибки драйвера код и таблицу для лога.
func pgErrorFields(err error, fields port.Fields) port.Fields {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fields
	}
	if fields == nil {
		fields = port.Fields{}
	}
	fields["pg_code"] = pgErr.Code
	if pgErr.TableName != "" {
		fields["pg_table"] = pgErr.TableName
	}
	if pgErr.Code == queryCanceled {
		fields["pg_canceled"] = true
	}
	return fields
}
