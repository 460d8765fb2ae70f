package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/magiclook/ML-BookingService/pkg/dbmetrics"
)

// pgSerializationFailure код ошибки PostgreSQL для serialization failure
const pgSerializationFailure = "40001"

// ErrSerialization возвращается, когда сериализуемая транзакция
// не смогла завершиться из-за конфликта с конкурентной транзакцией
var ErrSerialization = errors.New("txmanager: serialization failure")

// TxBeginner интерфейс для начала транзакций (реализуется *dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager менеджер транзакций поверх обёрнутого метриками соединения
// Транзакция передается в репозитории через контекст (dbmetrics.WithExecutor)
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn в сериализуемой транзакции
// При конфликте с конкурентной транзакцией возвращает ErrSerialization,
// повторные попытки остаются на усмотрение вызывающего кода
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

func (m *TransactionManager) do(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("txmanager: begin transaction: %w", err)
	}

	txCtx := dbmetrics.WithExecutor(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return wrapSerialization(err)
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return wrapSerialization(fmt.Errorf("txmanager: commit transaction: %w", err))
	}

	return nil
}

// wrapSerialization помечает serialization failure сентинельной ошибкой
func wrapSerialization(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgSerializationFailure {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return err
}

// IsSerializationFailure возвращает true для ошибок сериализации транзакций
func IsSerializationFailure(err error) bool {
	if errors.Is(err, ErrSerialization) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgSerializationFailure
}
