package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/magiclook/ML-BookingService/internal/domain"
	"github.com/magiclook/ML-BookingService/pkg/dbmetrics"
	"github.com/magiclook/ML-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий каталога: товары и их физические экземпляры
// Каталог ведется снаружи, движок бронирования его только читает
// (плюс обновляет денормализованную подсказку доступности)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetItemByID получает товар по ID
func (r *Repository) GetItemByID(ctx context.Context, id int64) (*domain.Item, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"brand",
		"material",
		"color",
		"gender",
		"category",
		"subcategory",
		"price_rent",
		"price_sale",
		"shop_id",
		"is_available",
		"next_available_date",
		"created_at",
		"updated_at",
	).
		From("items").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetItemByID - build select query: %v", ErrBuildQuery, err)
	}

	var item domain.Item
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&item.ID,
		&item.Name,
		&item.Brand,
		&item.Material,
		&item.Color,
		&item.Gender,
		&item.Category,
		&item.Subcategory,
		&item.PriceRent,
		&item.PriceSale,
		&item.ShopID,
		&item.Available,
		&item.NextAvailableDate,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetItemByID - scan item: %v", ErrScanRow, err)
	}

	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time

	return &item, nil
}

// ListBookableUnits получает экземпляры товара, пригодные для бронирования:
// состояние AVAILABLE (не MAINTENANCE), опционально точное совпадение размера.
// Порядок по id ASC делает распределение экземпляров детерминированным:
// движок всегда предлагает свободный экземпляр с наименьшим id
func (r *Repository) ListBookableUnits(ctx context.Context, itemID int64, size *string) ([]*domain.ItemUnit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"item_id",
		"size",
		"state",
		"created_at",
		"updated_at",
	).
		From("item_units").
		Where(squirrel.Eq{"item_id": itemID}).
		Where(squirrel.Eq{"state": domain.UnitAvailable}).
		OrderBy("id ASC")

	if size != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"size": *size})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookableUnits - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookableUnits - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	units := make([]*domain.ItemUnit, 0)
	for rows.Next() {
		var unit domain.ItemUnit
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&unit.ID,
			&unit.ItemID,
			&unit.Size,
			&unit.State,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBookableUnits - scan row: %v", ErrScanRow, err)
		}

		unit.CreatedAt = createdAt.Time
		unit.UpdatedAt = updatedAt.Time

		units = append(units, &unit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBookableUnits - rows error: %v", ErrScanRow, err)
	}

	return units, nil
}

// GetUnitByID получает экземпляр по ID
func (r *Repository) GetUnitByID(ctx context.Context, id int64) (*domain.ItemUnit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"item_id",
		"size",
		"state",
		"created_at",
		"updated_at",
	).
		From("item_units").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUnitByID - build select query: %v", ErrBuildQuery, err)
	}

	var unit domain.ItemUnit
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&unit.ID,
		&unit.ItemID,
		&unit.Size,
		&unit.State,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUnitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnitByID - scan unit: %v", ErrScanRow, err)
	}

	unit.CreatedAt = createdAt.Time
	unit.UpdatedAt = updatedAt.Time

	return &unit, nil
}

// UpdateUnitState переводит экземпляр между состояниями AVAILABLE/MAINTENANCE
// Операция для персонала, на существующие брони не влияет
func (r *Repository) UpdateUnitState(ctx context.Context, id int64, state domain.UnitState) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("item_units").
		Set("state", state).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateUnitState - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateUnitState - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateUnitState - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrUnitNotFound
	}

	return nil
}

// UpdateItemAvailabilityHint обновляет денормализованную подсказку
// доступности на карточке товара. Подсказка не авторитетна:
// реальная доступность всегда решается по интервалам броней
func (r *Repository) UpdateItemAvailabilityHint(ctx context.Context, itemID int64, available bool, nextAvailable *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("items").
		Set("is_available", available).
		Set("next_available_date", nextAvailable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": itemID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateItemAvailabilityHint - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateItemAvailabilityHint - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateItemAvailabilityHint - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}
