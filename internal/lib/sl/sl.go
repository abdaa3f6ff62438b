// Package sl — вспомогательные атрибуты для структурированного логирования.
package sl

import "log/slog"

// Err оборачивает ошибку в slog.Attr с ключом "error", чтобы все записи
// лога с ошибками имели одинаковую форму.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
