package get_slots

import "errors"

var (
	// ErrPolicyNotFound возвращается, когда для scope нет политики
	ErrPolicyNotFound = errors.New("get_slots: policy not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slots: internal error")
)
