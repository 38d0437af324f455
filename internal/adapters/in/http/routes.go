package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists one method per operation in openapi.yaml.
type ServerInterface interface {
	// (POST /api/v1/products)
	IntakeProduct(ctx echo.Context, params ActorParams) error
	// (POST /api/v1/products/{productId}/transitions)
	ApplyProductTransition(ctx echo.Context, productId openapi_types.UUID, params ActorParams) error
	// (GET /api/v1/locations)
	ListLocations(ctx echo.Context) error
	// (POST /api/v1/locations)
	CreateLocation(ctx echo.Context, params ActorParams) error
	// (POST /api/v1/shipments)
	ResolveBundle(ctx echo.Context, params ActorParams) error
	// (GET /api/v1/shipments/{groupId})
	GetShipment(ctx echo.Context, groupId openapi_types.UUID) error
	// (POST /api/v1/shipments/{groupId}/transitions)
	AdvanceShipment(ctx echo.Context, groupId openapi_types.UUID, params ActorParams) error
	// (POST /api/v1/shipments/{groupId}/label)
	IssueShipmentLabel(ctx echo.Context, groupId openapi_types.UUID, params ActorParams) error
	// (DELETE /api/v1/shipments/{groupId}/members/{productId})
	RemoveBundleMember(ctx echo.Context, groupId openapi_types.UUID, productId openapi_types.UUID, params ActorParams) error
	// (GET /api/v1/audit/{entityType}/{entityId})
	ListAudit(ctx echo.Context, entityType string, entityId openapi_types.UUID) error
	// (GET /api/v1/notifications)
	ListNotifications(ctx echo.Context, params ListNotificationsParams) error
	// (POST /api/v1/notifications/{notificationId}/read)
	MarkNotificationRead(ctx echo.Context, notificationId openapi_types.UUID, params ActorParams) error
}

// ServerInterfaceWrapper converts echo contexts to typed parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPathUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func bindHeader(ctx echo.Context, name string, dest any) error {
	valueList, found := ctx.Request().Header[http.CanonicalHeaderKey(name)]
	if !found {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Header parameter %s is required, but not found", name))
	}
	if n := len(valueList); n != 1 {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for %s, got %d", name, n))
	}
	err := runtime.BindStyledParameterWithOptions("simple", name, valueList[0], dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func bindActorParams(ctx echo.Context) (ActorParams, error) {
	var params ActorParams
	if err := bindHeader(ctx, "X-Actor-Id", &params.XActorId); err != nil {
		return params, err
	}
	if err := bindHeader(ctx, "X-Actor-Role", &params.XActorRole); err != nil {
		return params, err
	}
	return params, nil
}

func (w *ServerInterfaceWrapper) IntakeProduct(ctx echo.Context) error {
	params, err := bindActorParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.IntakeProduct(ctx, params)
}

func (w *ServerInterfaceWrapper) ApplyProductTransition(ctx echo.Context) error {
	productId, err := bindPathUUID(ctx, "productId")
	if err != nil {
		return err
	}
	params, err := bindActorParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ApplyProductTransition(ctx, productId, params)
}

func (w *ServerInterfaceWrapper) ListLocations(ctx echo.Context) error {
	return w.Handler.ListLocations(ctx)
}

func (w *ServerInterfaceWrapper) CreateLocation(ctx echo.Context) error {
	params, err := bindActorParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CreateLocation(ctx, params)
}

func (w *ServerInterfaceWrapper) ResolveBundle(ctx echo.Context) error {
	params, err := bindActorParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ResolveBundle(ctx, params)
}

func (w *ServerInterfaceWrapper) GetShipment(ctx echo.Context) error {
	groupId, err := bindPathUUID(ctx, "groupId")
	if err != nil {
		return err
	}
	return w.Handler.GetShipment(ctx, groupId)
}

func (w *ServerInterfaceWrapper) AdvanceShipment(ctx echo.Context) error {
	groupId, err := bindPathUUID(ctx, "groupId")
	if err != nil {
		return err
	}
	params, err := bindActorParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AdvanceShipment(ctx, groupId, params)
}

func (w *ServerInterfaceWrapper) IssueShipmentLabel(ctx echo.Context) error {
	groupId, err := bindPathUUID(ctx, "groupId")
	if err != nil {
		return err
	}
	params, err := bindActorParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.IssueShipmentLabel(ctx, groupId, params)
}

func (w *ServerInterfaceWrapper) RemoveBundleMember(ctx echo.Context) error {
	groupId, err := bindPathUUID(ctx, "groupId")
	if err != nil {
		return err
	}
	productId, err := bindPathUUID(ctx, "productId")
	if err != nil {
		return err
	}
	params, err := bindActorParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.RemoveBundleMember(ctx, groupId, productId, params)
}

func (w *ServerInterfaceWrapper) ListAudit(ctx echo.Context) error {
	var entityType string
	err := runtime.BindStyledParameterWithOptions("simple", "entityType", ctx.Param("entityType"), &entityType,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter entityType: %s", err))
	}
	entityId, err := bindPathUUID(ctx, "entityId")
	if err != nil {
		return err
	}
	return w.Handler.ListAudit(ctx, entityType, entityId)
}

func (w *ServerInterfaceWrapper) ListNotifications(ctx echo.Context) error {
	actor, err := bindActorParams(ctx)
	if err != nil {
		return err
	}
	params := ListNotificationsParams{ActorParams: actor}
	err = runtime.BindQueryParameter("form", true, false, "unreadOnly", ctx.QueryParams(), &params.UnreadOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter unreadOnly: %s", err))
	}
	return w.Handler.ListNotifications(ctx, params)
}

func (w *ServerInterfaceWrapper) MarkNotificationRead(ctx echo.Context) error {
	notificationId, err := bindPathUUID(ctx, "notificationId")
	if err != nil {
		return err
	}
	params, err := bindActorParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.MarkNotificationRead(ctx, notificationId, params)
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

func RegisterHandlers(router EchoRouter, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST("/api/v1/products", wrapper.IntakeProduct)
	router.POST("/api/v1/products/:productId/transitions", wrapper.ApplyProductTransition)
	router.GET("/api/v1/locations", wrapper.ListLocations)
	router.POST("/api/v1/locations", wrapper.CreateLocation)
	router.POST("/api/v1/shipments", wrapper.ResolveBundle)
	router.GET("/api/v1/shipments/:groupId", wrapper.GetShipment)
	router.POST("/api/v1/shipments/:groupId/transitions", wrapper.AdvanceShipment)
	router.POST("/api/v1/shipments/:groupId/label", wrapper.IssueShipmentLabel)
	router.DELETE("/api/v1/shipments/:groupId/members/:productId", wrapper.RemoveBundleMember)
	router.GET("/api/v1/audit/:entityType/:entityId", wrapper.ListAudit)
	router.GET("/api/v1/notifications", wrapper.ListNotifications)
	router.POST("/api/v1/notifications/:notificationId/read", wrapper.MarkNotificationRead)
}
