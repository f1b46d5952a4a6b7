package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ApplicationStatus is the review state of an application.
type ApplicationStatus int

const (
	ApplicationStatusPending ApplicationStatus = iota
	ApplicationStatusReviewed
	ApplicationStatusAccepted
	ApplicationStatusRejected
)

var applicationStatusNames = map[ApplicationStatus]string{
	ApplicationStatusPending:  "Pending",
	ApplicationStatusReviewed: "Reviewed",
	ApplicationStatusAccepted: "Accepted",
	ApplicationStatusRejected: "Rejected",
}

func (s ApplicationStatus) String() string {
	if name, ok := applicationStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ApplicationStatus(%d)", int(s))
}

func (s ApplicationStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ApplicationStatus) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		for status, name := range applicationStatusNames {
			if name == label {
				*s = status
				return nil
			}
		}
		return fmt.Errorf("unknown application status %q", label)
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("application status must be a label or a number: %w", err)
	}
	if _, ok := applicationStatusNames[ApplicationStatus(n)]; !ok {
		return fmt.Errorf("unknown application status %d", n)
	}
	*s = ApplicationStatus(n)
	return nil
}

// Application is a job seeker's submission for a job.
type Application struct {
	ID                int               `json:"id" gorm:"primaryKey;autoIncrement:false" validate:"required,gt=0"`
	Name              string            `json:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	PhoneNumber       string            `json:"phone_number" gorm:"not null" validate:"required"`
	Email             string            `json:"email" gorm:"type:varchar(256);not null" validate:"required,email"`
	JobID             int               `json:"job_id" gorm:"index;not null" validate:"required,gt=0"`
	JobSeekerID       int               `json:"job_seeker_id" gorm:"index;not null" validate:"required,gt=0"`
	Date              time.Time         `json:"date" gorm:"not null"`
	ApplicationCVPath string            `json:"application_cv_path" gorm:"not null" validate:"required"`
	Status            ApplicationStatus `json:"status" gorm:"not null;default:0"`
	CoverLetter       string            `json:"cover_letter,omitempty" gorm:"type:varchar(500)" validate:"max=500"`
	Version           int               `json:"version" gorm:"not null;default:1"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

func (a *Application) GetID() int       { return a.ID }
func (a *Application) GetVersion() int  { return a.Version }
func (a *Application) SetVersion(v int) { a.Version = v }
