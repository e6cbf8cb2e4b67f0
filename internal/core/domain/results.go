package domain

// ReadResult — результат чтения, которое не возвращает ошибку наружу.
// При неудаче Value содержит безопасное значение, а Err исходную ошибку.
type ReadResult[T any] struct {
	Value T
	Err   error
}

func (r ReadResult[T]) Failed() bool {
	return r.Err != nil
}

type PropertyPage struct {
	Properties []Property
	Pagination Pagination
}

// EmptyPropertyPage — значение при неудачном чтении списка объектов.
func EmptyPropertyPage() PropertyPage {
	return PropertyPage{Properties: []Property{}, Pagination: EmptyPagination()}
}

type OwnerPage struct {
	Owners     []Owner
	Pagination Pagination
}

// EmptyOwnerPage — значение при неудачном чтении списка владельцев.
func EmptyOwnerPage() OwnerPage {
	return OwnerPage{Owners: []Owner{}, Pagination: EmptyPagination()}
}
