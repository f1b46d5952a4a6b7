package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"jobboard/internal/models"
	"jobboard/internal/repositories"

	"github.com/google/uuid"
)

const defaultCVURLExpiry = 15 * time.Minute

// CVStore keeps uploaded CV documents.
type CVStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// ApplicationService handles business logic related to job applications.
type ApplicationService struct {
	*CRUDService[models.Application, *models.Application]
	jobs     repositories.JobRepository
	seekers  repositories.JobSeekerRepository
	eligible models.EligibilityPolicy
	now      func() time.Time
	cvs      CVStore
	cvExpiry time.Duration
}

// ApplicationOption configures an ApplicationService.
type ApplicationOption func(*ApplicationService)

// WithEligibility replaces the default eligibility policy.
func WithEligibility(policy models.EligibilityPolicy) ApplicationOption {
	return func(s *ApplicationService) {
		if policy != nil {
			s.eligible = policy
		}
	}
}

// WithClock sets the clock used for submission dates and deadline checks.
func WithClock(now func() time.Time) ApplicationOption {
	return func(s *ApplicationService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithCVStore enables CV uploads. expiry bounds the lifetime of download
// links and defaults to 15 minutes.
func WithCVStore(store CVStore, expiry time.Duration) ApplicationOption {
	return func(s *ApplicationService) {
		s.cvs = store
		if expiry > 0 {
			s.cvExpiry = expiry
		}
	}
}

// NewApplicationService creates a new ApplicationService. Applications must
// reference an existing job and job seeker.
func NewApplicationService(applications repositories.ApplicationRepository, jobs repositories.JobRepository, seekers repositories.JobSeekerRepository, events EventPublisher, opts ...ApplicationOption) *ApplicationService {
	s := &ApplicationService{
		jobs:     jobs,
		seekers:  seekers,
		eligible: models.LegacyEligibility,
		now:      time.Now,
		cvExpiry: defaultCVURLExpiry,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.CRUDService = &CRUDService[models.Application, *models.Application]{
		repo:   applications,
		msgs:   applicationMessages,
		entity: "application",
		events: events,
		references: func(application *models.Application) []reference {
			return []reference{
				{id: application.JobID, exists: jobs.Exists, message: MsgJobIDNotExists},
				{id: application.JobSeekerID, exists: seekers.Exists, message: MsgJobSeekerIDNotExists},
			}
		},
		beforeCreate: func(_ context.Context, application *models.Application) error {
			if application.Date.IsZero() {
				application.Date = s.now().UTC()
			}
			return nil
		},
	}
	return s
}

// Apply submits application for its job on behalf of its job seeker. The job
// must accept applications and its deadline must not have passed.
func (s *ApplicationService) Apply(ctx context.Context, application *models.Application) error {
	job, err := s.jobs.GetByID(ctx, application.JobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(ErrForeignKeyNotFound, MsgJobIDNotExists)
		}
		return internalError("failed to load job", err)
	}
	seeker, err := s.seekers.GetByID(ctx, application.JobSeekerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(ErrForeignKeyNotFound, MsgJobSeekerIDNotExists)
		}
		return internalError("failed to load job seeker", err)
	}

	now := s.now()
	if application.Date.IsZero() {
		application.Date = now.UTC()
	}
	if err := seeker.ApplyForJob(job, *application, now, s.eligible); err != nil {
		switch {
		case errors.Is(err, models.ErrDeadlinePassed):
			return newError(ErrDeadlinePassed, err.Error())
		case errors.Is(err, models.ErrJobNotActive), errors.Is(err, models.ErrJobFilled):
			return newError(ErrJobNotEligible, err.Error())
		}
		return internalError("failed to apply for job", err)
	}
	submitted := seeker.ApplicationList()
	*application = submitted[len(submitted)-1]
	return s.Create(ctx, application)
}

// AttachCV uploads a CV document and points the application at it.
func (s *ApplicationService) AttachCV(ctx context.Context, id int, filename string, r io.Reader, size int64, contentType string) (*models.Application, error) {
	if s.cvs == nil {
		return nil, newError(ErrUnavailable, MsgCVStoreUnavailable)
	}
	application, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, newError(ErrNotFound, s.msgs.notFound)
		}
		return nil, internalError("failed to get application", err)
	}

	key := cvKey(id, filename)
	if err := s.cvs.Put(ctx, key, r, size, contentType); err != nil {
		return nil, internalError("failed to store CV", err)
	}
	previous := application.ApplicationCVPath
	application.ApplicationCVPath = key
	if err := s.resolveReplace(ctx, application); err != nil {
		if delErr := s.cvs.Delete(ctx, key); delErr != nil {
			log.Printf("failed to remove orphaned CV %s: %v", key, delErr)
		}
		return nil, err
	}
	if strings.HasPrefix(previous, cvPrefix(id)) {
		if delErr := s.cvs.Delete(ctx, previous); delErr != nil {
			log.Printf("failed to remove replaced CV %s: %v", previous, delErr)
		}
	}
	publishEvent(s.events, s.entity, "cv_attached", id)
	return application, nil
}

// CVURL returns a time-limited download link for the application's CV.
func (s *ApplicationService) CVURL(ctx context.Context, id int) (string, error) {
	if s.cvs == nil {
		return "", newError(ErrUnavailable, MsgCVStoreUnavailable)
	}
	application, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(application.ApplicationCVPath, cvPrefix(id)) {
		return "", newError(ErrNotFound, fmt.Sprintf("No uploaded CV for application %d.", id))
	}
	url, err := s.cvs.PresignGet(ctx, application.ApplicationCVPath, s.cvExpiry)
	if err != nil {
		return "", internalError("failed to presign CV", err)
	}
	return url, nil
}

func cvPrefix(id int) string {
	return fmt.Sprintf("applications/%d/", id)
}

func cvKey(id int, filename string) string {
	return cvPrefix(id) + uuid.NewString() + strings.ToLower(path.Ext(filename))
}
