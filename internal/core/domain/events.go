package domain

import "time"

type EntityName string

const (
	EntityProperty      EntityName = "property"
	EntityOwner         EntityName = "owner"
	EntityPropertyImage EntityName = "image"
	EntityPropertyTrace EntityName = "trace"
)

type ChangeAction string

const (
	ActionCreated ChangeAction = "created"
	ActionUpdated ChangeAction = "updated"
	ActionDeleted ChangeAction = "deleted"
)

// ChangeEvent публикуется mock API после каждой успешной записи.
type ChangeEvent struct {
	Entity     EntityName
	Action     ChangeAction
	ID         string
	OccurredAt time.Time
}

// RoutingKey — ключ маршрутизации вида "<entity>.<action>".
func (e ChangeEvent) RoutingKey() string {
	return string(e.Entity) + "." + string(e.Action)
}
