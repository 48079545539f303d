package salonservice

import "errors"

var (
	// ErrBlockNotFound возвращается, когда блок доступности не найден в бэкенде
	ErrBlockNotFound = errors.New("salonservice client: availability block not found")

	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("salonservice client: employee not found")

	// ErrRejected возвращается, когда бэкенд отклонил запрос на изменение (4xx)
	ErrRejected = errors.New("salonservice client: request rejected by backend")

	// ErrInternal возвращается при внутренних ошибках клиента
	// (сеть недоступна, таймаут, не удалось сформировать запрос)
	ErrInternal = errors.New("salonservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от бэкенда
	ErrInvalidResponse = errors.New("salonservice client: invalid response")
)
