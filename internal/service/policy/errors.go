package policy

import "errors"

var (
	// ErrPolicyNotFound возвращается, когда политика для scope не найдена
	ErrPolicyNotFound = errors.New("policy not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("policy service: internal error")
)
