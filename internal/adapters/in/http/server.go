package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fuelmarket/internal/core/application/usecases/commands"
	"fuelmarket/internal/core/application/usecases/queries"
	"fuelmarket/internal/core/domain/model/kernel"
	"fuelmarket/internal/core/domain/model/pricing"
	"fuelmarket/internal/notify"
	"fuelmarket/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// userIDHeader carries the session user resolved by the upstream gateway.
// The identity is trusted as given; authentication is not this service's job.
const userIDHeader = "X-User-Id"

// Error is the JSON error body returned by every handler.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler           commands.PlaceOrderCommandHandler
	updateUrgencyFeeHandler     commands.UpdateUrgencyFeeCommandHandler
	markNotificationReadHandler commands.MarkNotificationReadCommandHandler
	markAllReadHandler          commands.MarkAllNotificationsReadCommandHandler

	// Query handlers
	getUserOrdersHandler        queries.GetUserOrdersQueryHandler
	getOrderHandler             queries.GetOrderQueryHandler
	getUserNotificationsHandler queries.GetUserNotificationsQueryHandler
	getPriceQuoteHandler        queries.GetPriceQuoteQueryHandler

	dispatcher *notify.Dispatcher
}

// NewServer creates a new HTTP server with the required command and query
// handlers plus the notification dispatcher for the direct-dispatch endpoint.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	updateUrgencyFeeHandler commands.UpdateUrgencyFeeCommandHandler,
	markNotificationReadHandler commands.MarkNotificationReadCommandHandler,
	markAllReadHandler commands.MarkAllNotificationsReadCommandHandler,
	getUserOrdersHandler queries.GetUserOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getUserNotificationsHandler queries.GetUserNotificationsQueryHandler,
	getPriceQuoteHandler queries.GetPriceQuoteQueryHandler,
	dispatcher *notify.Dispatcher,
) *Server {
	return &Server{
		placeOrderHandler:           placeOrderHandler,
		updateUrgencyFeeHandler:     updateUrgencyFeeHandler,
		markNotificationReadHandler: markNotificationReadHandler,
		markAllReadHandler:          markAllReadHandler,
		getUserOrdersHandler:        getUserOrdersHandler,
		getOrderHandler:             getOrderHandler,
		getUserNotificationsHandler: getUserNotificationsHandler,
		getPriceQuoteHandler:        getPriceQuoteHandler,
		dispatcher:                  dispatcher,
	}
}

// RegisterRoutes mounts all endpoints on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/fuel/orders", s.PlaceOrder)
	e.POST("/fuel/getOrders", s.GetOrders)
	e.GET("/fuel/orders/:orderId", s.GetOrder)
	e.GET("/fuel/orders/:orderId/status", s.GetOrderStatus)
	e.GET("/fuel/fueltypes", s.GetFuelTypes)
	e.POST("/fuel/price", s.GetPriceQuote)
	e.PATCH("/fuel/price/urgency", s.UpdateUrgencyFee)

	e.POST("/notifications", s.DispatchNotification)
	e.GET("/notifications/:userId", s.GetNotifications)
	e.PATCH("/notifications/:id/read", s.MarkNotificationRead)
	e.POST("/notifications/:userId/read-all", s.MarkAllNotificationsRead)
}

// PlaceOrderItemRequest is one caller-supplied line item on an order.
type PlaceOrderItemRequest struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	ProductID *string `json:"productId"`
	ServiceID *string `json:"serviceId"`
}

// PlaceOrderRequest is the body of POST /fuel/orders. Items is optional;
// when omitted the order carries a single line item derived from the fuel
// type and quantity.
type PlaceOrderRequest struct {
	FuelType           string                  `json:"fuelType"`
	DeliveryMode       string                  `json:"deliveryMode"`
	Quantity           float64                 `json:"quantity"`
	Distance           float64                 `json:"distance"`
	Currency           string                  `json:"currency"`
	ScheduledFor       *time.Time              `json:"scheduledFor"`
	DeliveryLocationID *string                 `json:"deliveryLocationId"`
	Notes              string                  `json:"notes"`
	Items              []PlaceOrderItemRequest `json:"items"`
}

// PlaceOrder handles POST /fuel/orders - places a fuel delivery order.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	userID, err := s.sessionUser(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Missing or invalid user identity",
		})
	}

	var req PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	var locationID *kernel.UUID
	if req.DeliveryLocationID != nil {
		id, err := kernel.UUIDFromString(*req.DeliveryLocationID)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid delivery location id",
			})
		}
		locationID = &id
	}

	items := make([]commands.PlaceOrderItemParams, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, commands.PlaceOrderItemParams{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			ProductID: item.ProductID,
			ServiceID: item.ServiceID,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(commands.PlaceOrderParams{
		OrderID:            orderID,
		UserID:             userID,
		FuelType:           pricing.FuelType(req.FuelType),
		DeliveryMode:       pricing.DeliveryMode(req.DeliveryMode),
		Quantity:           req.Quantity,
		Distance:           req.Distance,
		Currency:           req.Currency,
		ScheduledFor:       req.ScheduledFor,
		DeliveryLocationID: locationID,
		Notes:              req.Notes,
		Items:              items,
	})
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	if handleErr := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusUnprocessableEntity, Error{
				Code:    http.StatusUnprocessableEntity,
				Message: "No price configuration for the requested fuel type and delivery mode",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to place order",
		})
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"orderId": orderID.String()})
}

// GetOrders handles POST /fuel/getOrders - lists the session user's orders,
// newest first.
func (s *Server) GetOrders(ctx echo.Context) error {
	userID, err := s.sessionUser(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Missing or invalid user identity",
		})
	}

	query, err := queries.NewGetUserOrdersQuery(userID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid user id",
		})
	}

	orders, err := s.getUserOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = orderFromQuery(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /fuel/orders/:orderId - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	resp, ok, err := s.lookupOrder(ctx)
	if !ok {
		return err
	}

	return ctx.JSON(http.StatusOK, orderFromQuery(resp))
}

// GetOrderStatus handles GET /fuel/orders/:orderId/status - delivery check.
func (s *Server) GetOrderStatus(ctx echo.Context) error {
	resp, ok, err := s.lookupOrder(ctx)
	if !ok {
		return err
	}

	return ctx.JSON(http.StatusOK, map[string]string{
		"orderId": resp.ID.String(),
		"status":  resp.Status,
	})
}

// lookupOrder resolves the :orderId path parameter into a query response.
// On failure it writes the error response itself and reports ok=false.
func (s *Server) lookupOrder(ctx echo.Context) (queries.OrderResponse, bool, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return queries.OrderResponse{}, false, ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return queries.OrderResponse{}, false, ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return queries.OrderResponse{}, false, ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return queries.OrderResponse{}, false, ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order",
		})
	}

	return resp, true, nil
}

// GetFuelTypes handles GET /fuel/fueltypes - enumerates supported fuel types.
func (s *Server) GetFuelTypes(ctx echo.Context) error {
	types := pricing.FuelTypes()
	response := make([]string, len(types))
	for i, t := range types {
		response[i] = t.String()
	}

	return ctx.JSON(http.StatusOK, response)
}

// PriceQuoteRequest is the body of POST /fuel/price.
type PriceQuoteRequest struct {
	FuelType     string  `json:"fuelType"`
	DeliveryMode string  `json:"deliveryMode"`
	Quantity     float64 `json:"quantity"`
	Distance     float64 `json:"distance"`
}

// PriceQuote is the response body of POST /fuel/price.
type PriceQuote struct {
	FuelType     string  `json:"fuelType"`
	DeliveryMode string  `json:"deliveryMode"`
	Quantity     float64 `json:"quantity"`
	Distance     float64 `json:"distance"`
	Total        float64 `json:"total"`
}

// GetPriceQuote handles POST /fuel/price - computes a price without placing
// an order.
func (s *Server) GetPriceQuote(ctx echo.Context) error {
	var req PriceQuoteRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	query, err := queries.NewGetPriceQuoteQuery(
		pricing.FuelType(req.FuelType),
		pricing.DeliveryMode(req.DeliveryMode),
		req.Quantity,
		req.Distance,
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid quote request: " + err.Error(),
		})
	}

	quote, err := s.getPriceQuoteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusUnprocessableEntity, Error{
				Code:    http.StatusUnprocessableEntity,
				Message: "No price configuration for the requested fuel type and delivery mode",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to compute price",
		})
	}

	return ctx.JSON(http.StatusOK, PriceQuote{
		FuelType:     quote.FuelType.String(),
		DeliveryMode: quote.DeliveryMode.String(),
		Quantity:     quote.Quantity,
		Distance:     quote.Distance,
		Total:        quote.Total,
	})
}

// UpdateUrgencyFeeRequest is the body of PATCH /fuel/price/urgency.
type UpdateUrgencyFeeRequest struct {
	FuelType     string  `json:"fuelType"`
	DeliveryMode string  `json:"deliveryMode"`
	UrgencyFee   float64 `json:"urgencyFee"`
}

// UpdateUrgencyFee handles PATCH /fuel/price/urgency - adjusts the urgency
// fee of one price configuration.
func (s *Server) UpdateUrgencyFee(ctx echo.Context) error {
	var req UpdateUrgencyFeeRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewUpdateUrgencyFeeCommand(
		pricing.FuelType(req.FuelType),
		pricing.DeliveryMode(req.DeliveryMode),
		req.UrgencyFee,
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid fee data: " + err.Error(),
		})
	}

	if err := s.updateUrgencyFeeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Price configuration not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to update urgency fee",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DispatchNotificationRequest is the body of POST /notifications.
type DispatchNotificationRequest struct {
	UserID    string            `json:"userId"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	ActionURL string            `json:"actionUrl"`
	Metadata  map[string]string `json:"metadata"`
	SendEmail bool              `json:"sendEmail"`
	SendSMS   bool              `json:"sendSms"`
	SendPush  bool              `json:"sendPush"`
}

// DispatchNotification handles POST /notifications - sends a notification
// directly through the configured channels. The database channel is always
// on; external channels are opt-in per request.
func (s *Server) DispatchNotification(ctx echo.Context) error {
	var req DispatchNotificationRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	userID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid user id",
		})
	}

	dispatchReq := notify.NewRequest(userID, req.Type, req.Title, req.Message)
	dispatchReq.ActionURL = req.ActionURL
	dispatchReq.Metadata = req.Metadata
	dispatchReq.SendEmail = req.SendEmail
	dispatchReq.SendSMS = req.SendSMS
	dispatchReq.SendPush = req.SendPush

	result, err := s.dispatcher.Dispatch(ctx.Request().Context(), dispatchReq)
	if err != nil {
		if errors.Is(err, notify.ErrUserNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "User not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to dispatch notification",
		})
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"success":  result.Success,
		"channels": result.Results,
	})
}

// Notification is one entry in the GET /notifications/:userId response.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	ActionURL *string   `json:"actionUrl"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetNotifications handles GET /notifications/:userId - lists a user's
// notifications, newest first. Supports limit and offset query parameters.
func (s *Server) GetNotifications(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.Param("userId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid user id",
		})
	}

	limit, err := queryInt(ctx, "limit")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid limit",
		})
	}
	offset, err := queryInt(ctx, "offset")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid offset",
		})
	}

	query, err := queries.NewGetUserNotificationsQuery(userID, limit, offset)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid pagination: " + err.Error(),
		})
	}

	notifications, err := s.getUserNotificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve notifications",
		})
	}

	response := make([]Notification, len(notifications))
	for i, n := range notifications {
		response[i] = Notification{
			ID:        n.ID.String(),
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			ActionURL: n.ActionURL,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// MarkNotificationRead handles PATCH /notifications/:id/read.
func (s *Server) MarkNotificationRead(ctx echo.Context) error {
	notificationID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid notification id",
		})
	}

	cmd, err := commands.NewMarkNotificationReadCommand(notificationID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid notification id",
		})
	}

	if err := s.markNotificationReadHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Notification not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to mark notification as read",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkAllNotificationsRead handles POST /notifications/:userId/read-all.
func (s *Server) MarkAllNotificationsRead(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.Param("userId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid user id",
		})
	}

	cmd, err := commands.NewMarkAllNotificationsReadCommand(userID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid user id",
		})
	}

	updated, err := s.markAllReadHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to mark notifications as read",
		})
	}

	return ctx.JSON(http.StatusOK, map[string]int64{"updated": updated})
}

// sessionUser reads the gateway-resolved user identity from the request.
func (s *Server) sessionUser(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Request().Header.Get(userIDHeader))
}

// OrderItem is one line item in order responses.
type OrderItem struct {
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

// Order is the JSON shape of an order in listing and lookup responses.
type Order struct {
	ID           string      `json:"id"`
	OrderNumber  string      `json:"orderNumber"`
	Status       string      `json:"status"`
	TotalAmount  float64     `json:"totalAmount"`
	Currency     string      `json:"currency"`
	DriverID     *string     `json:"driverId"`
	ScheduledFor *time.Time  `json:"scheduledFor"`
	CompletedAt  *time.Time  `json:"completedAt"`
	CancelledAt  *time.Time  `json:"cancelledAt"`
	Notes        string      `json:"notes"`
	CreatedAt    time.Time   `json:"createdAt"`
	Items        []OrderItem `json:"items"`
}

func orderFromQuery(o queries.OrderResponse) Order {
	items := make([]OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItem{
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		}
	}

	var driverID *string
	if o.DriverID != nil {
		id := o.DriverID.String()
		driverID = &id
	}

	return Order{
		ID:           o.ID.String(),
		OrderNumber:  o.OrderNumber,
		Status:       o.Status,
		TotalAmount:  o.TotalAmount,
		Currency:     o.Currency,
		DriverID:     driverID,
		ScheduledFor: o.ScheduledFor,
		CompletedAt:  o.CompletedAt,
		CancelledAt:  o.CancelledAt,
		Notes:        o.Notes,
		CreatedAt:    o.CreatedAt,
		Items:        items,
	}
}

// queryInt parses an optional non-negative integer query parameter.
// Absent values yield zero, which downstream queries treat as defaults.
func queryInt(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
