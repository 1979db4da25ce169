// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"bookstore/internal/domain/entity"
	domainerrors "bookstore/internal/domain/errors"
	"bookstore/internal/domain/repository"
	"bookstore/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the domain.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// CreateOrder persists a new order together with its items.
func (repo *orderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid user or product reference")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("order item quantity must be at least 1")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i, itemM := range orderM.Items {
		order.Items[i].ID = itemM.ID
		order.Items[i].OrderID = itemM.OrderID
	}

	return nil
}

// FindOrderByID retrieves an order with its items and transport record.
func (repo *orderRepository) FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Transport").
		First(&orderM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// ListOrders retrieves a page of orders matching the filter, newest first.
func (repo *orderRepository) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.OrderModel{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count orders")
	}

	var orderModels []*model.OrderModel
	err := query.
		Preload("Items").
		Preload("Transport").
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&orderModels).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, total, nil
}

// UpdateOrderStatus moves an order from one status to another.
// The WHERE guard on the current status makes concurrent transitions lose.
func (repo *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing order from a lost status race.
		var count int64
		if err := repo.db.WithContext(ctx).Model(&model.OrderModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to update order status")
		}
		if count == 0 {
			return repository.ErrOrderNotFound
		}

		return repository.ErrOrderStatusStale
	}

	return nil
}

// CreateTransport persists a shipping record and links it to an order.
func (repo *orderRepository) CreateTransport(ctx context.Context, orderID uuid.UUID, transport *entity.Transport) error {
	transportM := fromTransportDomain(transport)

	if err := repo.db.WithContext(ctx).Create(transportM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create transport")
	}

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", orderID).
		Update("transport_id", transportM.ID)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to link transport to order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	transport.ID = transportM.ID
	transport.CreatedAt = transportM.CreatedAt
	transport.UpdatedAt = transportM.UpdatedAt

	return nil
}

// UpdateTransport updates an existing shipping record.
func (repo *orderRepository) UpdateTransport(ctx context.Context, transport *entity.Transport) error {
	result := repo.db.WithContext(ctx).
		Model(&model.TransportModel{}).
		Where("id = ?", transport.ID).
		Updates(map[string]any{
			"company_name":  transport.CompanyName,
			"tracking_code": transport.TrackingCode,
			"send_date":     transport.SendDate,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update transport")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTransportNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]*entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, toOrderItemDomain(itemM))
	}

	return &entity.Order{
		ID:            data.ID,
		UserID:        data.UserID,
		TransportID:   data.TransportID,
		Transport:     toTransportDomain(data.Transport),
		TotalPrice:    data.TotalPrice,
		DiscountPrice: data.DiscountPrice,
		Status:        entity.OrderStatus(data.Status),
		Items:         items,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]*model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, fromOrderItemDomain(item))
	}

	return &model.OrderModel{
		ID:            data.ID,
		UserID:        data.UserID,
		TransportID:   data.TransportID,
		TotalPrice:    data.TotalPrice,
		DiscountPrice: data.DiscountPrice,
		Status:        string(data.Status),
		Items:         items,
	}
}

// toOrderItemDomain converts a GORM OrderItemModel to a domain OrderItem entity.
func toOrderItemDomain(data *model.OrderItemModel) *entity.OrderItem {
	if data == nil {
		return nil
	}

	return &entity.OrderItem{
		ID:            data.ID,
		OrderID:       data.OrderID,
		ProductID:     data.ProductID,
		ProductTitle:  data.ProductTitle,
		ProductSKU:    data.ProductSKU,
		Quantity:      data.Quantity,
		Price:         data.Price,
		DiscountPrice: data.DiscountPrice,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromOrderItemDomain converts a domain OrderItem entity to a GORM OrderItemModel.
func fromOrderItemDomain(data *entity.OrderItem) *model.OrderItemModel {
	if data == nil {
		return nil
	}

	return &model.OrderItemModel{
		ID:            data.ID,
		OrderID:       data.OrderID,
		ProductID:     data.ProductID,
		ProductTitle:  data.ProductTitle,
		ProductSKU:    data.ProductSKU,
		Quantity:      data.Quantity,
		Price:         data.Price,
		DiscountPrice: data.DiscountPrice,
	}
}

// toTransportDomain converts a GORM TransportModel to a domain Transport entity.
func toTransportDomain(data *model.TransportModel) *entity.Transport {
	if data == nil {
		return nil
	}

	return &entity.Transport{
		ID:           data.ID,
		CompanyName:  data.CompanyName,
		TrackingCode: data.TrackingCode,
		SendDate:     data.SendDate,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromTransportDomain converts a domain Transport entity to a GORM TransportModel.
func fromTransportDomain(data *entity.Transport) *model.TransportModel {
	if data == nil {
		return nil
	}

	return &model.TransportModel{
		ID:           data.ID,
		CompanyName:  data.CompanyName,
		TrackingCode: data.TrackingCode,
		SendDate:     data.SendDate,
	}
}
