package resumectrl

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Resume struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"not null;type:text" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ResumeService struct {
	db        *gorm.DB
	snowflake *snowflake.Node
}

func NewResumeService(db *gorm.DB) (*ResumeService, error) {
	// Initialize snowflake node
	node, err := snowflake.NewNode(1) // Node number 1 for resumes
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %v", err)
	}

	return &ResumeService{
		db:        db,
		snowflake: node,
	}, nil
}

func (s *ResumeService) Create(ctx context.Context, userID int64, title, content string) (*Resume, error) {
	resume := &Resume{
		ID:      s.snowflake.Generate().Int64(),
		UserID:  userID,
		Title:   title,
		Content: content,
	}

	result := s.db.WithContext(ctx).Create(resume)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create resume: %v", result.Error)
	}

	return resume, nil
}

func (s *ResumeService) GetByID(ctx context.Context, id int64) (*Resume, error) {
	var resume Resume
	result := s.db.WithContext(ctx).First(&resume, id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %v", result.Error)
	}
	return &resume, nil
}

func (s *ResumeService) ListByUser(ctx context.Context, userID int64) ([]Resume, error) {
	var resumes []Resume
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&resumes)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list resumes: %v", result.Error)
	}
	return resumes, nil
}

// List returns a page of all resumes regardless of owner, for batch tooling
func (s *ResumeService) List(ctx context.Context, offset, limit int) ([]Resume, error) {
	var resumes []Resume
	result := s.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&resumes)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list resumes: %v", result.Error)
	}
	return resumes, nil
}

// Delete removes a resume scoped to its owner. Returns gorm.ErrRecordNotFound
// when the row does not exist or belongs to another user.
func (s *ResumeService) Delete(ctx context.Context, id, userID int64) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Resume{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete resume: %v", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
