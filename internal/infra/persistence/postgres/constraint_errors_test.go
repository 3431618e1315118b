package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintViolationHelpers(t *testing.T) {
	unique := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "idx_users_email"}
	foreignKey := &pgconn.PgError{Code: pgForeignKeyViolation}
	notNull := &pgconn.PgError{Code: pgNotNullViolation}

	assert.True(t, isUniqueConstraintViolation(unique))
	assert.True(t, isUniqueConstraintViolation(errors.Wrap(unique, "insert user")))
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueConstraintViolation(foreignKey))
	assert.False(t, isUniqueConstraintViolation(errors.New("duplicate key value")))

	assert.True(t, isForeignKeyConstraintViolation(foreignKey))
	assert.True(t, isForeignKeyConstraintViolation(gorm.ErrForeignKeyViolated))
	assert.False(t, isForeignKeyConstraintViolation(notNull))

	assert.True(t, isNotNullConstraintViolation(notNull))
	assert.False(t, isNotNullConstraintViolation(unique))
	assert.False(t, isNotNullConstraintViolation(gorm.ErrRecordNotFound))
}
