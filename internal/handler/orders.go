package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pizza-delivery/api/internal/database"
	"github.com/pizza-delivery/api/internal/enum"
	"github.com/pizza-delivery/api/internal/middleware"
	"github.com/pizza-delivery/api/internal/service"
	"github.com/pizza-delivery/api/internal/ws"
)

// OrderStore defines the database methods needed by order create/read handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type OrderStore interface {
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	ListOrders(ctx context.Context) ([]database.Order, error)
	GetOrder(ctx context.Context, id int32) (database.Order, error)
	ListOrdersByUser(ctx context.Context, userID int32) ([]database.Order, error)
	GetUserOrder(ctx context.Context, arg database.GetUserOrderParams) (database.Order, error)
}

// OrderMutator defines the transactional mutations on existing orders.
// Satisfied by *service.OrderService.
type OrderMutator interface {
	UpdateFields(ctx context.Context, req service.UpdateFieldsRequest) (database.Order, error)
	UpdateStatus(ctx context.Context, orderID int32, status pgtype.Text) (database.Order, error)
	Delete(ctx context.Context, req service.DeleteRequest) (database.Order, error)
}

// OrderNotifier publishes order changes to the live feed.
// Satisfied by *ws.Hub.
type OrderNotifier interface {
	BroadcastOrderEvent(ownerID int32, event ws.Event)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	store    OrderStore
	svc      OrderMutator
	notifier OrderNotifier
}

// NewOrderHandler creates a new OrderHandler. notifier may be nil.
func NewOrderHandler(store OrderStore, svc OrderMutator, notifier OrderNotifier) *OrderHandler {
	return &OrderHandler{store: store, svc: svc, notifier: notifier}
}

// RegisterRoutes registers order endpoints on the given Chi router.
// Expected to be mounted at /orders behind Authenticate and LoadUser.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Hello)
	r.Post("/order", h.Create)
	r.Get("/user/orders", h.ListMine)
	r.Get("/user/orders/{id}", h.GetMine)
	r.Put("/order/update/{id}", h.UpdateFields)
	r.Delete("/order/delete/{id}", h.Delete)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireStaff)
		r.Get("/orders", h.List)
		r.Get("/order/{id}", h.Get)
		r.Patch("/order/update/{id}", h.UpdateStatus)
	})
}

// --- Request / Response types ---

// Fields absent from the body (or sent as null) decode to Valid=false.
type orderFieldsRequest struct {
	Quantity  pgtype.Int4 `json:"quantity"`
	PizzaSize pgtype.Text `json:"pizza_size"`
}

type orderStatusRequest struct {
	OrderStatus pgtype.Text `json:"order_status"`
}

type createOrderResponse struct {
	PizzaSize   string `json:"pizza_size"`
	Quantity    int32  `json:"quantity"`
	ID          int32  `json:"id"`
	OrderStatus string `json:"order_status"`
}

type orderResponse struct {
	ID          int32  `json:"id"`
	Quantity    int32  `json:"quantity"`
	OrderStatus string `json:"order_status"`
	PizzaSize   string `json:"pizza_size"`
	UserID      int32  `json:"user_id"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Handlers ---

// Hello handles GET /orders/.
func (h *OrderHandler) Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Hello World"})
}

// Create handles POST /orders/order. The caller becomes the owner and the
// order always starts PENDING.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req orderFieldsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !req.Quantity.Valid {
		writeDetail(w, http.StatusBadRequest, service.ErrInvalidQuantity.Error())
		return
	}
	size, err := service.ValidateFields(req.Quantity, req.PizzaSize)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	if !size.Valid {
		size = pgtype.Text{String: enum.DefaultPizzaSize, Valid: true}
	}

	order, err := h.store.CreateOrder(r.Context(), database.CreateOrderParams{
		Quantity:  req.Quantity.Int32,
		PizzaSize: size.String,
		UserID:    user.ID,
	})
	if err != nil {
		log.Printf("ERROR: create order for user %d: %v", user.ID, err)
		writeDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.publish(ws.EventOrderCreated, order)
	writeJSON(w, http.StatusCreated, createOrderResponse{
		PizzaSize:   order.PizzaSize,
		Quantity:    order.Quantity,
		ID:          order.ID,
		OrderStatus: order.OrderStatus,
	})
}

// List handles GET /orders/orders (staff).
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListOrders(r.Context())
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		writeDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

// Get handles GET /orders/order/{id} (staff).
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	order, err := h.store.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeDetail(w, http.StatusBadRequest, fmt.Sprintf("Order with order_id %d is not found", id))
			return
		}
		log.Printf("ERROR: get order %d: %v", id, err)
		writeDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// ListMine handles GET /orders/user/orders.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	orders, err := h.store.ListOrdersByUser(r.Context(), user.ID)
	if err != nil {
		log.Printf("ERROR: list orders for user %d: %v", user.ID, err)
		writeDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(orders) == 0 {
		writeJSON(w, http.StatusOK, messageResponse{Message: "The user does not have any orders"})
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponses(orders))
}

// GetMine handles GET /orders/user/orders/{id}. Another user's order is
// reported the same way as a missing one.
func (h *OrderHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	id, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	order, err := h.store.GetUserOrder(r.Context(), database.GetUserOrderParams{ID: id, UserID: user.ID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusOK, messageResponse{
				Message: fmt.Sprintf("User does not have an order with order_id %d", id),
			})
			return
		}
		log.Printf("ERROR: get order %d for user %d: %v", id, user.ID, err)
		writeDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// UpdateFields handles PUT /orders/order/update/{id}.
func (h *OrderHandler) UpdateFields(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	id, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	var req orderFieldsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.svc.UpdateFields(r.Context(), service.UpdateFieldsRequest{
		OrderID:   id,
		Actor:     actorFor(user),
		Quantity:  req.Quantity,
		PizzaSize: req.PizzaSize,
	})
	if err != nil {
		writeServiceError(w, id, err)
		return
	}

	h.publish(ws.EventOrderUpdated, order)
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// UpdateStatus handles PATCH /orders/order/update/{id} (staff).
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	var req orderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.svc.UpdateStatus(r.Context(), id, req.OrderStatus)
	if err != nil {
		writeServiceError(w, id, err)
		return
	}

	h.publish(ws.EventOrderStatusChanged, order)
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// Delete handles DELETE /orders/order/delete/{id} and answers with the
// order as it was just before removal.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	id, ok := parseOrderID(w, r)
	if !ok {
		return
	}

	order, err := h.svc.Delete(r.Context(), service.DeleteRequest{OrderID: id, Actor: actorFor(user)})
	if err != nil {
		writeServiceError(w, id, err)
		return
	}

	h.publish(ws.EventOrderDeleted, order)
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// --- Helpers ---

func (h *OrderHandler) publish(eventType string, order database.Order) {
	if h.notifier == nil {
		return
	}
	payload, err := json.Marshal(toOrderResponse(order))
	if err != nil {
		log.Printf("ERROR: marshal %s event for order %d: %v", eventType, order.ID, err)
		return
	}
	h.notifier.BroadcastOrderEvent(order.UserID, ws.Event{Type: eventType, Payload: payload})
}

func parseOrderID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid order ID")
		return 0, false
	}
	return int32(id), true
}

func actorFor(user *database.User) service.Actor {
	return service.Actor{UserID: user.ID, IsStaff: user.IsStaff}
}

// writeServiceError maps order service errors to HTTP responses.
func writeServiceError(w http.ResponseWriter, orderID int32, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidPizzaSize),
		errors.Is(err, service.ErrInvalidOrderStatus):
		writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrOrderNotFound):
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("Order with order_id %d is not found", orderID))
	case errors.Is(err, service.ErrNotOrderOwner):
		writeDetail(w, http.StatusUnauthorized, err.Error())
	default:
		log.Printf("ERROR: order %d: %v", orderID, err)
		writeDetail(w, http.StatusInternalServerError, "internal server error")
	}
}

func toOrderResponse(o database.Order) orderResponse {
	return orderResponse{
		ID:          o.ID,
		Quantity:    o.Quantity,
		OrderStatus: o.OrderStatus,
		PizzaSize:   o.PizzaSize,
		UserID:      o.UserID,
	}
}

func toOrderResponses(orders []database.Order) []orderResponse {
	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	return resp
}
