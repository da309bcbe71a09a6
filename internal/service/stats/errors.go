package stats

import "errors"

var (
	// ErrAccessDenied возвращается, когда пользователь не является сотрудником
	ErrAccessDenied = errors.New("stats.service: access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("stats.service: internal error")
)
