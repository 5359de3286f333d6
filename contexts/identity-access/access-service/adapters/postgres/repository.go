package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"caixa/contexts/identity-access/access-service/domain/entities"
	domainerrors "caixa/contexts/identity-access/access-service/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

func (r *Repository) FindByDisplayName(ctx context.Context, displayName string) (entities.Identity, bool, error) {
	var row identityModel
	err := r.db.WithContext(ctx).
		Where("display_name = ?", strings.TrimSpace(displayName)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Identity{}, false, nil
		}
		return entities.Identity{}, false, err
	}
	return row.toEntity(), true, nil
}

// Create inserts conditionally on the display_name uniqueness key. A lost
// race reports ErrDisplayNameConflict so the provisioner can re-read the
// winner's row.
func (r *Repository) Create(ctx context.Context, identity entities.Identity) error {
	row := identityModelFromEntity(identity)
	createResult := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "display_name"}},
			DoNothing: true,
		}).
		Create(&row)
	if createResult.Error != nil {
		if isUniqueViolation(createResult.Error) {
			return domainerrors.ErrDisplayNameConflict
		}
		return createResult.Error
	}
	if createResult.RowsAffected == 0 {
		return domainerrors.ErrDisplayNameConflict
	}
	return nil
}

// DisplayNames resolves identity ids to display names for the master
// consolidated ledger view.
func (r *Repository) DisplayNames(ctx context.Context, identityIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(identityIDs))
	if len(identityIDs) == 0 {
		return names, nil
	}

	var rows []identityModel
	if err := r.db.WithContext(ctx).
		Where("identity_id IN ?", identityIDs).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.IdentityID] = row.DisplayName
	}
	return names, nil
}

type identityModel struct {
	IdentityID            string    `gorm:"column:identity_id;primaryKey"`
	DisplayName           string    `gorm:"column:display_name"`
	CredentialFingerprint string    `gorm:"column:credential_fingerprint"`
	CreatedAt             time.Time `gorm:"column:created_at"`
}

func (identityModel) TableName() string {
	return "identities"
}

func identityModelFromEntity(item entities.Identity) identityModel {
	return identityModel{
		IdentityID:            strings.TrimSpace(item.IdentityID),
		DisplayName:           strings.TrimSpace(item.DisplayName),
		CredentialFingerprint: item.CredentialFingerprint,
		CreatedAt:             item.CreatedAt.UTC(),
	}
}

func (m identityModel) toEntity() entities.Identity {
	return entities.Identity{
		IdentityID:            m.IdentityID,
		DisplayName:           m.DisplayName,
		CredentialFingerprint: m.CredentialFingerprint,
		CreatedAt:             m.CreatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
