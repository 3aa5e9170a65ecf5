package persistent

// Initial は保存値が無いときの初期値。
// Literal（そのままの値）か Lazy（生成関数）のどちらか。
type Initial[T any] struct {
	value   T
	factory func() T
}

func Literal[T any](v T) Initial[T] {
	return Initial[T]{value: v}
}

// 重い初期値用。必要になったときに一度だけ呼ばれる。
func Lazy[T any](fn func() T) Initial[T] {
	return Initial[T]{factory: fn}
}

func (i Initial[T]) resolve() T {
	if i.factory != nil {
		return i.factory()
	}
	return i.value
}
