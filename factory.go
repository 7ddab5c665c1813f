package stockpile

func FactoryNewStore[T any](opts ...Option) Store[T] {
	return newStore[T](opts...)
}
