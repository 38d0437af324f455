// Package queries holds the read side. Handlers read the tables directly
// through sqlx and never load aggregates.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/event"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrListAuditQueryIsNotConstructed = errors.New(
	"ListAuditQuery must be created via NewListAuditQuery constructor",
)

var auditEntityTypes = []string{
	event.EntityProduct,
	event.EntityShipmentGroup,
	event.EntityLocation,
	event.EntityNotification,
}

// ListAuditQuery returns the full history of one entity, oldest first.
//
// Example:
//
//	query, err := NewListAuditQuery("product", productID)
//	if err != nil {
//	    return err
//	}
//	entries, err := handler.Handle(ctx, query)
type ListAuditQuery struct {
	entityType string
	entityID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewListAuditQuery(entityType string, entityID kernel.UUID) (ListAuditQuery, error) {
	valid := false
	for _, t := range auditEntityTypes {
		if t == entityType {
			valid = true
			break
		}
	}

	var errList []error
	if !valid {
		errList = append(errList, errs.NewValueIsInvalidError("entityType"))
	}
	if err := entityID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return ListAuditQuery{}, err
	}

	return ListAuditQuery{entityType: entityType, entityID: entityID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAuditQuery) Validate() error {
	return q.guard.Validate(ErrListAuditQueryIsNotConstructed)
}

func (q ListAuditQuery) EntityType() string {
	return q.entityType
}

func (q ListAuditQuery) EntityID() kernel.UUID {
	return q.entityID
}

type ListAuditQueryResponse struct {
	ID         kernel.UUID       `json:"id"`
	EntityType string            `json:"entityType"`
	EntityID   kernel.UUID       `json:"entityId"`
	FromStatus string            `json:"fromStatus"`
	ToStatus   string            `json:"toStatus"`
	ActorID    kernel.UUID       `json:"actorId"`
	Timestamp  time.Time         `json:"timestamp"`
	Context    map[string]string `json:"context"`
}
