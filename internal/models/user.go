package models

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"gorm.io/datatypes"
)

// Role labels attached to accounts and carried as token claims.
const (
	RoleEmployer  = "Employer"
	RoleJobSeeker = "JobSeeker"
	RoleAdmin     = "Admin"
)

// Kind tags which variant an Account is.
type Kind string

const (
	KindJobSeeker Kind = "JobSeeker"
	KindEmployer  Kind = "Employer"
)

var (
	ErrInvalidRole     = errors.New("invalid role")
	ErrPasswordEmpty   = errors.New("Password cannot be null or empty.")
	ErrPasswordShort   = errors.New("Password must be at least 8 characters long")
	ErrPasswordNoUpper = errors.New("Password must contain at least one uppercase letter")
	ErrPasswordNoLower = errors.New("Password must contain at least one lowercase letter")
	ErrPasswordNoDigit = errors.New("Password must contain at least one digit")
)

// User is the record shared by job seekers and employers.
// Password is write-only: it is accepted on input, hashed into PasswordHash
// and cleared by Sanitize before the record leaves the API.
type User struct {
	ID           int                         `json:"id" gorm:"primaryKey;autoIncrement:false" validate:"required,gt=0"`
	Email        string                      `json:"email" gorm:"uniqueIndex;type:varchar(256)" validate:"required,email"`
	FirstName    string                      `json:"first_name" gorm:"type:varchar(100)" validate:"required,max=100"`
	LastName     string                      `json:"last_name" gorm:"type:varchar(100)" validate:"required,max=100"`
	DisplayName  string                      `json:"name" gorm:"-"`
	PhoneNumber  string                      `json:"phone_number" validate:"required"`
	Address      string                      `json:"address" validate:"required"`
	Password     string                      `json:"password,omitempty" gorm:"-"`
	PasswordHash string                      `json:"-" gorm:"type:varchar(255)"`
	Roles        datatypes.JSONSlice[string] `json:"-"`
	Version      int                         `json:"version" gorm:"not null;default:1"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// Name is the derived display name.
func (u *User) Name() string {
	return u.FirstName + " " + u.LastName
}

// Sanitize prepares the record for serialization.
func (u *User) Sanitize() {
	u.Password = ""
	u.DisplayName = u.Name()
}

// HasRole reports whether the account carries the given role label.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) GetID() int       { return u.ID }
func (u *User) GetVersion() int  { return u.Version }
func (u *User) SetVersion(v int) { u.Version = v }

// ValidatePassword enforces the password policy for new credentials.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordEmpty
	}
	if len(password) < 8 {
		return ErrPasswordShort
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		return ErrPasswordNoUpper
	}
	if !strings.ContainsFunc(password, unicode.IsLower) {
		return ErrPasswordNoLower
	}
	if !strings.ContainsFunc(password, unicode.IsDigit) {
		return ErrPasswordNoDigit
	}
	return nil
}

// Account is the closed set of user variants: *JobSeeker and *Employer.
type Account interface {
	Base() *User
	Kind() Kind
	account()
}

// CompanyHolder is implemented by accounts that represent a company.
type CompanyHolder interface {
	Account
	Company() string
}

// Applicant is implemented by accounts that submit applications.
type Applicant interface {
	Account
	ApplicationList() []Application
}

// JobSeeker is an account that applies for jobs.
type JobSeeker struct {
	User
	Applications []Application `json:"applications,omitempty" gorm:"foreignKey:JobSeekerID"`
}

func (s *JobSeeker) Base() *User                    { return &s.User }
func (s *JobSeeker) Kind() Kind                     { return KindJobSeeker }
func (s *JobSeeker) ApplicationList() []Application { return s.Applications }
func (s *JobSeeker) account()                       {}

// ApplyForJob appends application to both the job's and the seeker's
// collections once the job accepts applications at now.
func (s *JobSeeker) ApplyForJob(job *Job, application Application, now time.Time, eligible EligibilityPolicy) error {
	if err := eligible(job.Status); err != nil {
		return err
	}
	if job.DeadlinePassed(now) {
		return ErrDeadlinePassed
	}
	application.JobID = job.ID
	application.JobSeekerID = s.ID
	s.Applications = append(s.Applications, application)
	job.Applications = append(job.Applications, application)
	return nil
}

// Employer is an account that owns job postings. Admins are employers
// carrying the Admin role label.
type Employer struct {
	User
	CompanyName string `json:"company_name" gorm:"type:varchar(100)" validate:"required,max=100"`
	JobPostings []Job  `json:"job_postings,omitempty" gorm:"foreignKey:EmployerID"`
}

func (e *Employer) Base() *User     { return &e.User }
func (e *Employer) Kind() Kind      { return KindEmployer }
func (e *Employer) Company() string { return e.CompanyName }
func (e *Employer) account()        {}

// Registration is the self-service sign-up request.
type Registration struct {
	ID          int    `json:"id" validate:"required,gt=0"`
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Address     string `json:"address" validate:"required"`
	Role        string `json:"role"`
	CompanyName string `json:"company_name" validate:"max=100"`
}

// NewAccount builds the account variant matching the requested role.
// Employer and Admin both produce an Employer.
func NewAccount(reg Registration) (Account, error) {
	base := User{
		ID:          reg.ID,
		Email:       reg.Email,
		FirstName:   reg.FirstName,
		LastName:    reg.LastName,
		PhoneNumber: reg.PhoneNumber,
		Address:     reg.Address,
		Password:    reg.Password,
		Roles:       datatypes.JSONSlice[string]{reg.Role},
	}
	switch reg.Role {
	case RoleEmployer, RoleAdmin:
		return &Employer{User: base, CompanyName: reg.CompanyName}, nil
	case RoleJobSeeker:
		return &JobSeeker{User: base}, nil
	default:
		return nil, ErrInvalidRole
	}
}
