package jobctrl

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Job struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"not null" json:"title"`
	Company     string    `json:"company"`
	Description string    `gorm:"not null;type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type JobService struct {
	db        *gorm.DB
	snowflake *snowflake.Node
}

func NewJobService(db *gorm.DB) (*JobService, error) {
	// Initialize snowflake node
	node, err := snowflake.NewNode(2) // Node number 2 for jobs
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %v", err)
	}

	return &JobService{
		db:        db,
		snowflake: node,
	}, nil
}

func (s *JobService) Create(ctx context.Context, userID int64, title, company, description string) (*Job, error) {
	job := &Job{
		ID:          s.snowflake.Generate().Int64(),
		UserID:      userID,
		Title:       title,
		Company:     company,
		Description: description,
	}

	result := s.db.WithContext(ctx).Create(job)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create job: %v", result.Error)
	}

	return job, nil
}

func (s *JobService) GetByID(ctx context.Context, id int64) (*Job, error) {
	var job Job
	result := s.db.WithContext(ctx).First(&job, id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %v", result.Error)
	}
	return &job, nil
}

func (s *JobService) ListByUser(ctx context.Context, userID int64) ([]Job, error) {
	var jobs []Job
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&jobs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list jobs: %v", result.Error)
	}
	return jobs, nil
}

// List returns a page of all jobs regardless of owner, for batch tooling
func (s *JobService) List(ctx context.Context, offset, limit int) ([]Job, error) {
	var jobs []Job
	result := s.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&jobs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list jobs: %v", result.Error)
	}
	return jobs, nil
}

// Delete removes a job scoped to its owner. Returns gorm.ErrRecordNotFound
// when the row does not exist or belongs to another user.
func (s *JobService) Delete(ctx context.Context, id, userID int64) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Job{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete job: %v", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
