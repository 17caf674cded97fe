package blockedday

import "errors"

var (
	// ErrBlockedDayNotFound возвращается, когда на дату нет закрытых слотов
	ErrBlockedDayNotFound = errors.New("blockedday.repository: blocked day not found")

	// ErrDuplicateDate возвращается, когда запись на эту дату уже существует
	ErrDuplicateDate = errors.New("blockedday.repository: blocked day already exists for date")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("blockedday.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("blockedday.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("blockedday.repository: failed to scan row")
)
