package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotFull возвращается, когда все места слота заняты
	ErrSlotFull = errors.New("slot.repository: slot full")

	// ErrSlotBlocked возвращается при операции над административно заблокированным слотом
	ErrSlotBlocked = errors.New("slot.repository: slot blocked")

	// ErrSlotNotBlocked возвращается при попытке снять блокировку с незаблокированного слота
	ErrSlotNotBlocked = errors.New("slot.repository: slot is not blocked")

	// ErrNothingToRelease возвращается при попытке декремента нулевого счетчика
	ErrNothingToRelease = errors.New("slot.repository: nothing to release")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
