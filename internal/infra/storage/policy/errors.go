package policy

import "errors"

var (
	// ErrPolicyNotFound возвращается, когда политика не найдена
	ErrPolicyNotFound = errors.New("policy.repository: policy not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("policy.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("policy.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("policy.repository: failed to scan row")

	// ErrEncodeHours возвращается при ошибке сериализации расписания в JSON
	ErrEncodeHours = errors.New("policy.repository: failed to encode operating hours")

	// ErrDecodeHours возвращается при ошибке десериализации расписания из JSON
	ErrDecodeHours = errors.New("policy.repository: failed to decode operating hours")
)
