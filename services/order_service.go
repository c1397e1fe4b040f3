package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/lumiere-api/cart"
	"github.com/yeremiapane/lumiere-api/models"
	"github.com/yeremiapane/lumiere-api/utils"
	"gorm.io/gorm"
)

// OrderService turns a cart into a tracked order. Nothing is charged.
type OrderService struct {
	db     *gorm.DB
	menu   *MenuService
	events EventPublisher
}

func NewOrderService(db *gorm.DB, menu *MenuService, events EventPublisher) *OrderService {
	return &OrderService{db: db, menu: menu, events: publisherOrNoop(events)}
}

// Checkout prices every line at the current catalog price and stores the
// order with its items in one transaction. Unknown or unavailable items
// reject the whole checkout.
func (s *OrderService) Checkout(ctx context.Context, userID uint, snap cart.Snapshot) (*models.Order, error) {
	if snap.IsEmpty() {
		return nil, fmt.Errorf("%w: cart is empty", utils.ErrValidation)
	}

	priced := cart.New()
	for _, line := range snap.Lines {
		item, err := s.menu.GetByID(ctx, line.ItemID)
		if errors.Is(err, utils.ErrNotFound) {
			return nil, fmt.Errorf("%w: item %d is no longer on the menu", utils.ErrValidation, line.ItemID)
		}
		if err != nil {
			return nil, err
		}
		if !item.IsAvailable {
			return nil, fmt.Errorf("%w: %s is currently unavailable", utils.ErrValidation, item.Name)
		}
		priced.Add(cart.Item{ID: item.ID, Name: item.Name, Price: item.Price, Image: item.Image})
		priced.SetQuantity(item.ID, line.Quantity)
	}
	totals := priced.Snapshot()

	order := models.Order{
		UserID:      userID,
		Status:      models.OrderPending,
		Subtotal:    utils.Money(totals.Subtotal),
		Tax:         utils.Money(totals.Tax),
		TotalAmount: utils.Money(totals.Total),
	}
	for _, l := range totals.Lines {
		order.Items = append(order.Items, models.OrderItem{
			MenuItemID: l.ItemID,
			Name:       l.Name,
			Price:      l.Price,
			Quantity:   l.Quantity,
		})
	}

	// Create with associations writes the items inside the same
	// transaction gorm opens for the order.
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	utils.InfoLogger.WithField("order", order.Reference()).Info("Order placed")
	s.events.BroadcastOrderPlaced(order)
	return &order, nil
}

// AdvanceStatus moves an order one step along Pending, Preparing, Ready,
// Delivered. Skipping or going back is a validation error.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	if !models.IsOrderStatus(status) {
		return nil, fmt.Errorf("%w: unknown order status %q", utils.ErrValidation, status)
	}

	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order not found", utils.ErrNotFound)
			}
			return fmt.Errorf("get order: %w", err)
		}
		next, ok := models.NextStatus(order.Status)
		if !ok || next != status {
			return fmt.Errorf("%w: cannot move order from %s to %s", utils.ErrValidation, order.Status, status)
		}
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Update("status", status)
		if res.Error != nil {
			return fmt.Errorf("update order status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: order status changed concurrently", utils.ErrValidation)
		}
		order.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order":  order.Reference(),
		"status": status,
	}).Info("Order status changed")
	s.events.BroadcastOrderStatusChanged(order)
	return &order, nil
}

// ListActive is the kitchen queue: every order not yet delivered, oldest
// first.
func (s *OrderService) ListActive(ctx context.Context) ([]models.Order, error) {
	out := make([]models.Order, 0)
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("status <> ?", models.OrderDelivered).
		Order("created_at ASC").Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list active orders: %w", err)
	}
	return out, nil
}

// GetForUser hides other users' orders behind ErrNotFound.
func (s *OrderService) GetForUser(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order not found", utils.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &order, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	out := make([]models.Order, 0)
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return out, nil
}
