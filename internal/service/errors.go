package service

import "fmt"

// ValidationError — входные данные не прошли проверку обязательных полей.
// Errors: имя поля -> сообщение, по одной записи на каждое нарушение.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	return "Validation failed"
}

// NotFoundError — записи с указанным ID нет в хранилище.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Komik dengan ID %d tidak ditemukan", e.ID)
}
