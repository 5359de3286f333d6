package postgresadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"caixa/contexts/finance-core/ledger-service/domain/entities"

	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Insert(ctx context.Context, transaction entities.Transaction) error {
	row := transactionModelFromEntity(transaction)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListAll(ctx context.Context) ([]entities.Transaction, error) {
	var rows []transactionModel
	if err := r.db.WithContext(ctx).
		Order("date DESC, seq DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return entitiesFromModels(rows), nil
}

func (r *Repository) ListByOwner(ctx context.Context, ownerIdentityID string) ([]entities.Transaction, error) {
	var rows []transactionModel
	if err := r.db.WithContext(ctx).
		Where("owner_identity_id = ?", strings.TrimSpace(ownerIdentityID)).
		Order("date DESC, seq DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return entitiesFromModels(rows), nil
}

func (r *Repository) Delete(ctx context.Context, transactionID string, ownerIdentityID string) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("transaction_id = ?", strings.TrimSpace(transactionID))
	if ownerIdentityID != "" {
		tx = tx.Where("owner_identity_id = ?", strings.TrimSpace(ownerIdentityID))
	}
	result := tx.Delete(&transactionModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

type transactionModel struct {
	TransactionID   string    `gorm:"column:transaction_id;primaryKey"`
	Seq             int64     `gorm:"column:seq;->"`
	OwnerIdentityID string    `gorm:"column:owner_identity_id"`
	Description     string    `gorm:"column:description"`
	Amount          float64   `gorm:"column:amount"`
	Kind            string    `gorm:"column:kind"`
	Category        string    `gorm:"column:category"`
	Date            time.Time `gorm:"column:date"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (transactionModel) TableName() string {
	return "transactions"
}

func transactionModelFromEntity(item entities.Transaction) transactionModel {
	return transactionModel{
		TransactionID:   strings.TrimSpace(item.TransactionID),
		OwnerIdentityID: strings.TrimSpace(item.OwnerIdentityID),
		Description:     strings.TrimSpace(item.Description),
		Amount:          item.Amount,
		Kind:            string(item.Kind),
		Category:        strings.TrimSpace(item.Category),
		Date:            item.Date.UTC(),
		CreatedAt:       item.CreatedAt.UTC(),
	}
}

func (m transactionModel) toEntity() entities.Transaction {
	return entities.Transaction{
		TransactionID:   m.TransactionID,
		OwnerIdentityID: m.OwnerIdentityID,
		Description:     m.Description,
		Amount:          m.Amount,
		Kind:            entities.Kind(m.Kind),
		Category:        m.Category,
		Date:            m.Date.UTC(),
		CreatedAt:       m.CreatedAt.UTC(),
	}
}

func entitiesFromModels(rows []transactionModel) []entities.Transaction {
	items := make([]entities.Transaction, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}
