package settings

import "errors"

var (
	// ErrSettingNotFound возвращается, когда ключ настройки отсутствует
	ErrSettingNotFound = errors.New("settings.repository: setting not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("settings.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("settings.repository: failed to scan row")

	// ErrDecodeValue возвращается при ошибке десериализации значения настройки
	ErrDecodeValue = errors.New("settings.repository: failed to decode setting value")

	// ErrEncodeValue возвращается при ошибке сериализации значения настройки
	ErrEncodeValue = errors.New("settings.repository: failed to encode setting value")
)
