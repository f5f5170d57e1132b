package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestMetadataFor(t *testing.T) {
	t.Parallel()

	require.Equal(t, http.StatusBadRequest, MetadataFor(CodeValidation).HTTPStatus)
	require.Equal(t, http.StatusServiceUnavailable, MetadataFor(CodeDependency).HTTPStatus)
	require.True(t, MetadataFor(CodeDependency).Retryable)

	// unknown codes fall back to internal
	require.Equal(t, http.StatusInternalServerError, MetadataFor(Code("NOPE")).HTTPStatus)
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("boom")
	err := Wrap(CodeDependency, cause, "load product")

	require.ErrorIs(t, err, cause)
	require.Equal(t, CodeDependency, err.Code())
	require.Equal(t, "DEPENDENCY_ERROR: load product", err.Error())
}

func TestAsFindsTypedErrorInChain(t *testing.T) {
	t.Parallel()

	inner := New(CodeNotFound, "cart not found")
	wrapped := fmt.Errorf("handling request: %w", inner)

	typed := As(wrapped)
	require.NotNil(t, typed)
	require.Equal(t, CodeNotFound, typed.Code())

	require.Nil(t, As(stdErrors.New("plain")))
}

func TestDumpExtractsPGDiagnostics(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "carts_customer_id_key", TableName: "carts"}
	err := Wrap(CodeConflict, pgErr, "persist cart")

	d := Dump(err)
	require.Equal(t, CodeConflict, d.Code)
	require.Equal(t, "23505", d.PGCode)
	require.Equal(t, "carts_customer_id_key", d.PGConstraint)
	require.NotEmpty(t, d.Chain)
}
