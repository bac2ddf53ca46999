package ptr

// Ptr возвращает указатель на переданное значение
// Удобно для передачи literal-значений в опциональные поля
func Ptr[T any](v T) *T {
	return &v
}
