package repositories

import (
	"jobboard/internal/models"

	"gorm.io/gorm"
)

// NewGORMJobSeekerRepository creates a job seeker repository. Deleting a job
// seeker deletes their applications.
func NewGORMJobSeekerRepository(db *gorm.DB) *GORMRepository[models.JobSeeker, *models.JobSeeker] {
	return newGORMRepository[models.JobSeeker, *models.JobSeeker](db, "job seeker", deleteJobSeekerDependents, "Applications")
}

func deleteJobSeekerDependents(tx *gorm.DB, jobSeekerID int) error {
	return tx.Where("job_seeker_id = ?", jobSeekerID).Delete(&models.Application{}).Error
}

// NewGORMEmployerRepository creates an employer repository. Deleting an
// employer deletes their job postings and the applications to them.
func NewGORMEmployerRepository(db *gorm.DB) *GORMRepository[models.Employer, *models.Employer] {
	return newGORMRepository[models.Employer, *models.Employer](db, "employer", deleteEmployerDependents, "JobPostings")
}

func deleteEmployerDependents(tx *gorm.DB, employerID int) error {
	var jobIDs []int
	if err := tx.Model(&models.Job{}).Where("employer_id = ?", employerID).Pluck("id", &jobIDs).Error; err != nil {
		return err
	}
	if len(jobIDs) == 0 {
		return nil
	}
	if err := tx.Where("job_id IN ?", jobIDs).Delete(&models.Application{}).Error; err != nil {
		return err
	}
	return tx.Where("employer_id = ?", employerID).Delete(&models.Job{}).Error
}
