package get_port_availability

import "errors"

var (
	// ErrPortNotFound возвращается, когда порт не найден
	ErrPortNotFound = errors.New("get_port_availability: port not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_port_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_port_availability: internal error")
)
