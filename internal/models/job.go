package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// JobStatus is the lifecycle state of a job posting.
type JobStatus int

const (
	JobStatusActive JobStatus = iota
	JobStatusInactive
	JobStatusFilled
)

var jobStatusNames = map[JobStatus]string{
	JobStatusActive:   "Active",
	JobStatusInactive: "Inactive",
	JobStatusFilled:   "Filled",
}

var (
	ErrJobNotActive   = errors.New("Cannot apply for this job as it is not Active!")
	ErrJobFilled      = errors.New("Cannot apply for this job as it is Filled!")
	ErrDeadlinePassed = errors.New("Cannot apply for this job as the application deadline has passed.")
)

func (s JobStatus) String() string {
	if name, ok := jobStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("JobStatus(%d)", int(s))
}

// Valid reports whether s is one of the declared statuses.
func (s JobStatus) Valid() bool {
	_, ok := jobStatusNames[s]
	return ok
}

func (s JobStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts either the status label or its numeric value.
func (s *JobStatus) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		for status, name := range jobStatusNames {
			if name == label {
				*s = status
				return nil
			}
		}
		return fmt.Errorf("unknown job status %q", label)
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("job status must be a label or a number: %w", err)
	}
	if !JobStatus(n).Valid() {
		return fmt.Errorf("unknown job status %d", n)
	}
	*s = JobStatus(n)
	return nil
}

// EligibilityPolicy decides whether a job in the given status accepts new
// applications. It returns ErrJobNotActive or ErrJobFilled when it does not.
type EligibilityPolicy func(status JobStatus) error

// LegacyEligibility rejects Active and Filled jobs and accepts Inactive ones.
func LegacyEligibility(status JobStatus) error {
	switch status {
	case JobStatusActive:
		return ErrJobNotActive
	case JobStatusFilled:
		return ErrJobFilled
	}
	return nil
}

// ActiveOnlyEligibility accepts applications only for Active jobs.
func ActiveOnlyEligibility(status JobStatus) error {
	switch status {
	case JobStatusActive:
		return nil
	case JobStatusFilled:
		return ErrJobFilled
	}
	return ErrJobNotActive
}

// EligibilityByName resolves a configured policy name.
func EligibilityByName(name string) (EligibilityPolicy, error) {
	switch name {
	case "", "legacy":
		return LegacyEligibility, nil
	case "active-only":
		return ActiveOnlyEligibility, nil
	}
	return nil, fmt.Errorf("unknown eligibility policy %q", name)
}

// Job is a posting owned by an employer.
type Job struct {
	ID                  int           `json:"id" gorm:"primaryKey;autoIncrement:false" validate:"required,gt=0"`
	Title               string        `json:"title" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Description         string        `json:"description" gorm:"not null" validate:"required"`
	Requirements        string        `json:"requirements" gorm:"not null" validate:"required"`
	Location            string        `json:"location" gorm:"not null" validate:"required"`
	Salary              float64       `json:"salary" gorm:"not null" validate:"gte=0"`
	EmployerID          int           `json:"employer_id" gorm:"index;not null" validate:"required,gt=0"`
	ApplicationDeadline time.Time     `json:"application_deadline" gorm:"not null" validate:"required"`
	Status              JobStatus     `json:"status" gorm:"not null;default:0"`
	Applications        []Application `json:"applications,omitempty" gorm:"foreignKey:JobID"`
	Version             int           `json:"version" gorm:"not null;default:1"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

func (j *Job) GetID() int       { return j.ID }
func (j *Job) GetVersion() int  { return j.Version }
func (j *Job) SetVersion(v int) { j.Version = v }

// DeadlinePassed reports whether now is strictly after the deadline.
func (j *Job) DeadlinePassed(now time.Time) bool {
	return now.After(j.ApplicationDeadline)
}
