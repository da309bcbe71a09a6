package schedule

import "errors"

var (
	// ErrAccessDenied возвращается, когда пользователь не является сотрудником
	ErrAccessDenied = errors.New("schedule.service: access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule.service: internal error")
)
