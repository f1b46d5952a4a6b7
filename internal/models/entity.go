package models

// Entity is a persisted record with a client-assigned primary key and a
// version used for optimistic concurrency.
type Entity interface {
	GetID() int
	GetVersion() int
	SetVersion(v int)
}

// EntityPtr constrains generic code to pointers of entity structs.
type EntityPtr[T any] interface {
	*T
	Entity
}
