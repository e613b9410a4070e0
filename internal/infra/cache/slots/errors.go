package slots

import "errors"

var (
	// ErrCacheMiss возвращается, когда записи для (scope, date) в кеше нет
	ErrCacheMiss = errors.New("slots.cache: cache miss")

	// ErrEncode возвращается при ошибке сериализации слотов
	ErrEncode = errors.New("slots.cache: failed to encode slots")

	// ErrDecode возвращается при ошибке десериализации слотов
	ErrDecode = errors.New("slots.cache: failed to decode slots")

	// ErrUnavailable возвращается при недоступности Redis
	ErrUnavailable = errors.New("slots.cache: redis unavailable")
)
