package mariadb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "not found", in: gorm.ErrRecordNotFound, want: ErrRecordNotFound},
		{name: "duplicate entry", in: &mysql.MySQLError{Number: 1062}, want: ErrDuplicateKey},
		{name: "missing parent", in: &mysql.MySQLError{Number: 1452}, want: ErrForeignKey},
		{name: "referenced row", in: &mysql.MySQLError{Number: 1451}, want: ErrForeignKey},
		{name: "truncated value", in: &mysql.MySQLError{Number: 1292}, want: ErrInvalidData},
		{name: "wrapped", in: fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062}), want: ErrDuplicateKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, TranslateError(tt.in), tt.want)
		})
	}

	assert.NoError(t, TranslateError(nil))
	other := &mysql.MySQLError{Number: 1064}
	assert.Equal(t, error(other), TranslateError(other))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&mysql.MySQLError{Number: 1205}))
	assert.True(t, IsRetryable(&mysql.MySQLError{Number: 1213}))
	assert.True(t, IsRetryable(fmt.Errorf("query: %w", mysql.ErrInvalidConn)))

	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(&mysql.MySQLError{Number: 1062}))
	assert.False(t, IsRetryable(errors.New("boom")))
}
