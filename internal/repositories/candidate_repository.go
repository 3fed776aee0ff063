package repositories

import (
	"context"

	"bloocareer_backend/internal/models"

	"gorm.io/gorm"
)

// CandidateRepository is the persistence boundary for application records.
type CandidateRepository interface {
	// Save persists one candidate with its embedded files, filling in
	// the generated identifiers and timestamps.
	Save(ctx context.Context, candidate *models.Candidate) error

	// FindAll returns every candidate, newest submission first, with
	// files preloaded in upload order.
	FindAll(ctx context.Context) ([]models.Candidate, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Save(ctx context.Context, candidate *models.Candidate) error {
	return r.db.WithContext(ctx).Create(candidate).Error
}

func (r *candidateRepository) FindAll(ctx context.Context) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.WithContext(ctx).
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("submitted_at DESC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	return candidates, nil
}
