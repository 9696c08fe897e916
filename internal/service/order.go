package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pizza-delivery/api/internal/database"
	"github.com/pizza-delivery/api/internal/enum"
)

// Errors returned by the order service.
var (
	ErrInvalidQuantity    = errors.New("Please provide a value for quantity greater than 0")
	ErrInvalidPizzaSize   = errors.New("Please provide a value for pizza size from ['SMALL', 'MEDIUM', 'LARGE', 'EXTRA-LARGE']")
	ErrInvalidOrderStatus = errors.New("Please provide a value for order_status from ['PENDING', 'IN-TRANSIT', 'DELIVERED']")
	ErrOrderNotFound      = errors.New("order not found")
	ErrNotOrderOwner      = errors.New("User is not the owner of this order")
)

// TxBeginner starts a new database transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// OrderStore defines the DB methods needed to mutate existing orders.
// Satisfied by *database.Queries (and its WithTx variant).
type OrderStore interface {
	GetOrderForUpdate(ctx context.Context, id int32) (database.Order, error)
	UpdateOrderFields(ctx context.Context, arg database.UpdateOrderFieldsParams) (database.Order, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
	DeleteOrder(ctx context.Context, id int32) (database.Order, error)
}

// NewOrderStore creates an OrderStore from a DBTX (pool or tx).
type NewOrderStore func(db database.DBTX) OrderStore

// Actor is the authenticated caller responsible for a mutation.
type Actor struct {
	UserID  int32
	IsStaff bool
}

// UpdateFieldsRequest is a partial update. Invalid (unset) fields are left
// untouched; a set field is applied even when it equals the column default.
type UpdateFieldsRequest struct {
	OrderID   int32
	Actor     Actor
	Quantity  pgtype.Int4
	PizzaSize pgtype.Text
}

type DeleteRequest struct {
	OrderID int32
	Actor   Actor
}

// OrderService runs order mutations one transaction per call, holding a
// row lock on the order for the duration.
type OrderService struct {
	pool             TxBeginner
	newStore         NewOrderStore
	enforceOwnership bool
}

// NewOrderService creates a new OrderService. When enforceOwnership is set,
// only the owner or a staff user may update fields or delete an order.
func NewOrderService(pool TxBeginner, newStore NewOrderStore, enforceOwnership bool) *OrderService {
	return &OrderService{pool: pool, newStore: newStore, enforceOwnership: enforceOwnership}
}

// ValidateFields checks and normalizes the supplied fields of a partial
// update without touching the store.
func ValidateFields(quantity pgtype.Int4, pizzaSize pgtype.Text) (pgtype.Text, error) {
	if quantity.Valid && quantity.Int32 <= 0 {
		return pizzaSize, ErrInvalidQuantity
	}
	if pizzaSize.Valid {
		size, ok := enum.NormalizePizzaSize(pizzaSize.String)
		if !ok {
			return pizzaSize, ErrInvalidPizzaSize
		}
		pizzaSize.String = size
	}
	return pizzaSize, nil
}

// UpdateFields applies quantity and/or pizza size. Validation happens before
// any write, so an invalid request never changes the stored order.
func (s *OrderService) UpdateFields(ctx context.Context, req UpdateFieldsRequest) (database.Order, error) {
	size, err := ValidateFields(req.Quantity, req.PizzaSize)
	if err != nil {
		return database.Order{}, err
	}

	var updated database.Order
	err = s.inTx(ctx, func(store OrderStore) error {
		current, err := s.lock(ctx, store, req.OrderID)
		if err != nil {
			return err
		}
		if err := s.authorize(current, req.Actor); err != nil {
			return err
		}

		// Nothing supplied: the locked row is already the answer.
		if !req.Quantity.Valid && !size.Valid {
			updated = current
			return nil
		}

		updated, err = store.UpdateOrderFields(ctx, database.UpdateOrderFieldsParams{
			Quantity:  req.Quantity,
			PizzaSize: size,
			ID:        req.OrderID,
		})
		if err != nil {
			return fmt.Errorf("update order fields: %w", err)
		}
		return nil
	})
	return updated, err
}

// UpdateStatus sets any of the three statuses; there is no transition graph.
// Callers are responsible for restricting this to staff.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int32, status pgtype.Text) (database.Order, error) {
	if !status.Valid || !enum.IsValidOrderStatus(status.String) {
		return database.Order{}, ErrInvalidOrderStatus
	}

	var updated database.Order
	err := s.inTx(ctx, func(store OrderStore) error {
		if _, err := s.lock(ctx, store, orderID); err != nil {
			return err
		}
		var err error
		updated, err = store.UpdateOrderStatus(ctx, database.UpdateOrderStatusParams{
			ID:          orderID,
			OrderStatus: status.String,
		})
		if err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		return nil
	})
	return updated, err
}

// Delete removes the order and returns its last-known state.
func (s *OrderService) Delete(ctx context.Context, req DeleteRequest) (database.Order, error) {
	var deleted database.Order
	err := s.inTx(ctx, func(store OrderStore) error {
		current, err := s.lock(ctx, store, req.OrderID)
		if err != nil {
			return err
		}
		if err := s.authorize(current, req.Actor); err != nil {
			return err
		}
		deleted, err = store.DeleteOrder(ctx, req.OrderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("delete order: %w", err)
		}
		return nil
	})
	return deleted, err
}

func (s *OrderService) lock(ctx context.Context, store OrderStore, id int32) (database.Order, error) {
	order, err := store.GetOrderForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, ErrOrderNotFound
		}
		return database.Order{}, fmt.Errorf("lock order: %w", err)
	}
	return order, nil
}

func (s *OrderService) authorize(order database.Order, actor Actor) error {
	if !s.enforceOwnership || actor.IsStaff || order.UserID == actor.UserID {
		return nil
	}
	return ErrNotOrderOwner
}

func (s *OrderService) inTx(ctx context.Context, fn func(store OrderStore) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(s.newStore(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
