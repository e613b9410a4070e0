package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotBlocked возвращается при операции над заблокированным слотом
	ErrSlotBlocked = errors.New("slot is blocked")

	// ErrSlotNotBlocked возвращается при попытке снять блокировку с незаблокированного слота
	ErrSlotNotBlocked = errors.New("slot is not blocked")

	// ErrNothingToRelease возвращается при освобождении слота без бронирований
	ErrNothingToRelease = errors.New("nothing to release")

	// ErrTooLateToCancel возвращается, когда отмена нарушает cancel_cutoff политики
	ErrTooLateToCancel = errors.New("too late to cancel booking for this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots service: internal error")
)
