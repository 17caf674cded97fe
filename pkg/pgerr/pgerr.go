package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Коды SQLSTATE PostgreSQL
const (
	CodeUniqueViolation      = "23505"
	CodeSerializationFailure = "40001"
)

// Code SQLSTATE ошибки драйвера, пустая строка для прочих ошибок
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsUniqueViolation true при нарушении уникального ограничения
func IsUniqueViolation(err error) bool {
	return Code(err) == CodeUniqueViolation
}

// IsSerializationFailure true при конфликте сериализуемых транзакций, транзакцию можно повторить
func IsSerializationFailure(err error) bool {
	return Code(err) == CodeSerializationFailure
}
