package calendar

import "errors"

var (
	// ErrAccessDenied возвращается, когда пользователь не является сотрудником
	ErrAccessDenied = errors.New("calendar.service: access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("calendar.service: internal error")
)
