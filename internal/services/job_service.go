package services

import (
	"jobboard/internal/models"
	"jobboard/internal/repositories"
)

// JobService handles business logic related to job postings.
type JobService struct {
	*CRUDService[models.Job, *models.Job]
}

// NewJobService creates a new JobService. Jobs must reference an existing
// employer.
func NewJobService(jobs repositories.JobRepository, employers repositories.EmployerRepository, events EventPublisher) *JobService {
	return &JobService{
		CRUDService: &CRUDService[models.Job, *models.Job]{
			repo:   jobs,
			msgs:   jobMessages,
			entity: "job",
			events: events,
			references: func(job *models.Job) []reference {
				return []reference{{id: job.EmployerID, exists: employers.Exists, message: MsgEmployerIDNotExists}}
			},
		},
	}
}
