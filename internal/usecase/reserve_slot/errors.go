package reserve_slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("reserve_slot: slot not found")

	// ErrSlotBlocked возвращается при попытке забронировать заблокированный слот
	ErrSlotBlocked = errors.New("reserve_slot: slot is blocked")

	// ErrSlotFull возвращается, когда все места слота заняты
	ErrSlotFull = errors.New("reserve_slot: slot is full")

	// ErrTooLateToReserve возвращается, когда бронирование нарушает booking_lead_time
	ErrTooLateToReserve = errors.New("reserve_slot: past booking lead time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_slot: internal error")
)
