package planner

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("planner: invalid input data")

	// ErrWrongMode возвращается, когда действие не соответствует активному режиму
	// Действия интерпретируются только в подходящем режиме: drag-resize - только
	// в режиме edit, выбор блока под удаление - только в режиме delete и т.д.
	ErrWrongMode = errors.New("planner: action is not allowed in the current mode")

	// ErrUnknownMode возвращается при неизвестном режиме планировщика
	ErrUnknownMode = errors.New("planner: unknown mode")

	// ErrNoSpaceAvailable возвращается, когда предложенный интервал полностью
	// покрыт существующей доступностью (после клиппинга не осталось фрагментов)
	ErrNoSpaceAvailable = errors.New("planner: no space available")

	// ErrNoDraft возвращается при подтверждении/запросе отсутствующего черновика
	ErrNoDraft = errors.New("planner: no pending draft")

	// ErrBlockNotFound возвращается, когда блок не найден в загруженной неделе
	ErrBlockNotFound = errors.New("planner: availability block not found in current week")

	// ErrWeekNotLoaded возвращается при попытке планировать изменения
	// до загрузки недели
	ErrWeekNotLoaded = errors.New("planner: week is not loaded")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("planner: internal error")
)
