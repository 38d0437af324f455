package http

import (
	"context"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type commandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

type resultHandler[Q, R any] interface {
	Handle(ctx context.Context, q Q) (R, error)
}

// Handlers groups the use cases the API exposes.
type Handlers struct {
	IntakeProduct          commandHandler[commands.IntakeProductCommand]
	ApplyProductTransition commandHandler[commands.ApplyProductTransitionCommand]
	CreateLocation         commandHandler[commands.CreateLocationCommand]
	ResolveBundle          commandHandler[commands.ResolveBundleCommand]
	AdvanceShipment        resultHandler[commands.AdvanceShipmentCommand, *shipment.Group]
	IssueShipmentLabel     resultHandler[commands.IssueShipmentLabelCommand, string]
	RemoveBundleMember     commandHandler[commands.RemoveBundleMemberCommand]
	MarkNotificationRead   commandHandler[commands.MarkNotificationReadCommand]

	ListAudit         resultHandler[queries.ListAuditQuery, []queries.ListAuditQueryResponse]
	ListNotifications resultHandler[queries.ListNotificationsQuery, []queries.ListNotificationsQueryResponse]
	GetShipment       resultHandler[queries.GetShipmentQuery, *queries.GetShipmentQueryResponse]
	ListLocations     resultHandler[queries.ListLocationsQuery, []queries.ListLocationsQueryResponse]
}

// Server implements ServerInterface on top of the command and query
// handlers. Every domain error is rendered through fail.
type Server struct {
	h              Handlers
	defaultCarrier string
	logger         *slog.Logger
}

func NewServer(h Handlers, defaultCarrier string, logger *slog.Logger) *Server {
	return &Server{h: h, defaultCarrier: defaultCarrier, logger: logger}
}

func actorFrom(params ActorParams) (kernel.Actor, error) {
	id, err := kernel.UUIDFromBytes(params.XActorId[:])
	if err != nil {
		return kernel.Actor{}, errs.NewValueIsInvalidErrorWithCause("X-Actor-Id", err)
	}
	role, err := kernel.ParseRole(params.XActorRole)
	if err != nil {
		return kernel.Actor{}, err
	}
	if role == kernel.RoleSystem {
		return kernel.Actor{}, errs.NewValueIsInvalidError("X-Actor-Role")
	}
	return kernel.NewActor(id, role)
}

func toKernel(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

// IntakeProduct handles POST /api/v1/products.
func (s *Server) IntakeProduct(ctx echo.Context, params ActorParams) error {
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body NewProduct
	if err = ctx.Bind(&body); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	productID := kernel.NewUUID()
	if body.Id != nil {
		if productID, err = toKernel(*body.Id); err != nil {
			return s.fail(ctx, err)
		}
	}
	ownerID, err := toKernel(body.OwnerId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewIntakeProductCommand(productID, ownerID, actor, body.Metadata)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.IntakeProduct.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{Id: productID.Bytes()})
}

// ApplyProductTransition handles POST /api/v1/products/{productId}/transitions.
func (s *Server) ApplyProductTransition(ctx echo.Context, productId openapi_types.UUID, params ActorParams) error {
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body ProductTransition
	if err = ctx.Bind(&body); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	target, err := product.ParseStatus(body.Target)
	if err != nil {
		return s.fail(ctx, err)
	}
	productID, err := toKernel(productId)
	if err != nil {
		return s.fail(ctx, err)
	}

	var locationID *kernel.UUID
	if body.LocationId != nil {
		id, idErr := toKernel(*body.LocationId)
		if idErr != nil {
			return s.fail(ctx, idErr)
		}
		locationID = &id
	}

	cmd, err := commands.NewApplyProductTransitionCommand(productID, target, actor, locationID)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.ApplyProductTransition.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListLocations handles GET /api/v1/locations.
func (s *Server) ListLocations(ctx echo.Context) error {
	locations, err := s.h.ListLocations.Handle(ctx.Request().Context(), queries.NewListLocationsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, locations)
}

// CreateLocation handles POST /api/v1/locations.
func (s *Server) CreateLocation(ctx echo.Context, params ActorParams) error {
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body NewLocation
	if err = ctx.Bind(&body); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	locationID := kernel.NewUUID()
	cmd, err := commands.NewCreateLocationCommand(locationID, body.Code, body.Capacity, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.CreateLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{Id: locationID.Bytes()})
}

// ResolveBundle handles POST /api/v1/shipments.
func (s *Server) ResolveBundle(ctx echo.Context, params ActorParams) error {
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body NewShipment
	if err = ctx.Bind(&body); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	productIDs := make([]kernel.UUID, 0, len(body.ProductIds))
	for _, raw := range body.ProductIds {
		id, idErr := toKernel(raw)
		if idErr != nil {
			return s.fail(ctx, idErr)
		}
		productIDs = append(productIDs, id)
	}

	carrier := s.defaultCarrier
	if body.Carrier != nil && *body.Carrier != "" {
		carrier = *body.Carrier
	}

	groupID := kernel.NewUUID()
	cmd, err := commands.NewResolveBundleCommand(groupID, productIDs, carrier, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.ResolveBundle.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{Id: groupID.Bytes()})
}

// GetShipment handles GET /api/v1/shipments/{groupId}.
func (s *Server) GetShipment(ctx echo.Context, groupId openapi_types.UUID) error {
	groupID, err := toKernel(groupId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetShipmentQuery(groupID)
	if err != nil {
		return s.fail(ctx, err)
	}

	group, err := s.h.GetShipment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, group)
}

// AdvanceShipment handles POST /api/v1/shipments/{groupId}/transitions and
// responds with the group as it stands afterwards.
func (s *Server) AdvanceShipment(ctx echo.Context, groupId openapi_types.UUID, params ActorParams) error {
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body ShipmentTransition
	if err = ctx.Bind(&body); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	target, err := shipment.ParseStatus(body.Target)
	if err != nil {
		return s.fail(ctx, err)
	}
	groupID, err := toKernel(groupId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAdvanceShipmentCommand(groupID, target, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	group, err := s.h.AdvanceShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, queries.NewGetShipmentQueryResponse(group))
}

// IssueShipmentLabel handles POST /api/v1/shipments/{groupId}/label. Asking
// again returns the number issued the first time.
func (s *Server) IssueShipmentLabel(ctx echo.Context, groupId openapi_types.UUID, params ActorParams) error {
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, err)
	}
	groupID, err := toKernel(groupId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewIssueShipmentLabelCommand(groupID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	tracking, err := s.h.IssueShipmentLabel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetShipmentQuery(groupID)
	if err != nil {
		return s.fail(ctx, err)
	}
	group, err := s.h.GetShipment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Label{TrackingNumber: tracking, TrackingUrl: group.TrackingURL})
}

// RemoveBundleMember handles DELETE /api/v1/shipments/{groupId}/members/{productId}.
func (s *Server) RemoveBundleMember(
	ctx echo.Context,
	groupId openapi_types.UUID,
	productId openapi_types.UUID,
	params ActorParams,
) error {
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, err)
	}
	groupID, err := toKernel(groupId)
	if err != nil {
		return s.fail(ctx, err)
	}
	productID, err := toKernel(productId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRemoveBundleMemberCommand(groupID, productID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.RemoveBundleMember.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListAudit handles GET /api/v1/audit/{entityType}/{entityId}.
func (s *Server) ListAudit(ctx echo.Context, entityType string, entityId openapi_types.UUID) error {
	entityID, err := toKernel(entityId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewListAuditQuery(entityType, entityID)
	if err != nil {
		return s.fail(ctx, err)
	}

	entries, err := s.h.ListAudit.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, entries)
}

// ListNotifications handles GET /api/v1/notifications for the calling actor.
func (s *Server) ListNotifications(ctx echo.Context, params ListNotificationsParams) error {
	actor, err := actorFrom(params.ActorParams)
	if err != nil {
		return s.fail(ctx, err)
	}

	unreadOnly := params.UnreadOnly != nil && *params.UnreadOnly
	query, err := queries.NewListNotificationsQuery(actor.ID(), unreadOnly)
	if err != nil {
		return s.fail(ctx, err)
	}

	notifications, err := s.h.ListNotifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead handles POST /api/v1/notifications/{notificationId}/read.
func (s *Server) MarkNotificationRead(ctx echo.Context, notificationId openapi_types.UUID, params ActorParams) error {
	actor, err := actorFrom(params)
	if err != nil {
		return s.fail(ctx, err)
	}
	notificationID, err := toKernel(notificationId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewMarkNotificationReadCommand(notificationID, actor)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.MarkNotificationRead.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
