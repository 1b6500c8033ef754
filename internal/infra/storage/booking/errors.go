package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается, когда слот уже занят другим бронированием
	// Ошибку порождает частичный уникальный индекс (port_id, timeslot)
	// по блокирующим статусам - проигравший конкурентный писатель получает её
	ErrSlotTaken = errors.New("booking.repository: slot already taken")

	// ErrBookingNotPending возвращается условным обновлением статуса,
	// когда не обновлено ни одной строки: бронирование либо не существует,
	// либо уже не в статусе Pending. Вызывающая сторона различает эти случаи
	ErrBookingNotPending = errors.New("booking.repository: booking is not pending")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("booking.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
