package repositories

import (
	"jobboard/internal/models"

	"gorm.io/gorm"
)

// NewGORMJobRepository creates a job repository. Deleting a job deletes its
// applications.
func NewGORMJobRepository(db *gorm.DB) *GORMRepository[models.Job, *models.Job] {
	return newGORMRepository[models.Job, *models.Job](db, "job", deleteJobDependents, "Applications")
}

func deleteJobDependents(tx *gorm.DB, jobID int) error {
	return tx.Where("job_id = ?", jobID).Delete(&models.Application{}).Error
}

// NewGORMApplicationRepository creates an application repository.
func NewGORMApplicationRepository(db *gorm.DB) *GORMRepository[models.Application, *models.Application] {
	return newGORMRepository[models.Application, *models.Application](db, "application", nil)
}
