package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"jobboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobSeeker_ApplyForJob(t *testing.T) {
	deadline := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	newJob := func(status models.JobStatus) *models.Job {
		return &models.Job{ID: 1, EmployerID: 42, Status: status, ApplicationDeadline: deadline}
	}

	t.Run("appends the same application to both sides", func(t *testing.T) {
		job := newJob(models.JobStatusInactive)
		seeker := &models.JobSeeker{User: models.User{ID: 7}}

		err := seeker.ApplyForJob(job, models.Application{ID: 5, Name: "Ada"}, deadline.Add(-time.Millisecond), models.LegacyEligibility)

		require.NoError(t, err)
		require.Len(t, job.Applications, 1)
		require.Len(t, seeker.Applications, 1)
		assert.Equal(t, job.Applications[0], seeker.Applications[0])
		assert.Equal(t, 1, seeker.Applications[0].JobID)
		assert.Equal(t, 7, seeker.Applications[0].JobSeekerID)
	})

	t.Run("deadline boundary", func(t *testing.T) {
		tests := []struct {
			name string
			now  time.Time
			err  error
		}{
			{"one millisecond before", deadline.Add(-time.Millisecond), nil},
			{"at the deadline", deadline, nil},
			{"one millisecond after", deadline.Add(time.Millisecond), models.ErrDeadlinePassed},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				job := newJob(models.JobStatusInactive)
				seeker := &models.JobSeeker{User: models.User{ID: 7}}

				err := seeker.ApplyForJob(job, models.Application{ID: 5}, tt.now, models.LegacyEligibility)

				if tt.err == nil {
					assert.NoError(t, err)
					return
				}
				assert.ErrorIs(t, err, tt.err)
				assert.Empty(t, job.Applications)
				assert.Empty(t, seeker.Applications)
			})
		}
	})

	t.Run("eligibility is checked before the deadline", func(t *testing.T) {
		job := newJob(models.JobStatusFilled)
		seeker := &models.JobSeeker{User: models.User{ID: 7}}

		err := seeker.ApplyForJob(job, models.Application{ID: 5}, deadline.Add(time.Hour), models.LegacyEligibility)

		assert.ErrorIs(t, err, models.ErrJobFilled)
	})
}

func TestEligibilityPolicies(t *testing.T) {
	tests := []struct {
		status     models.JobStatus
		legacy     error
		activeOnly error
	}{
		{models.JobStatusActive, models.ErrJobNotActive, nil},
		{models.JobStatusInactive, nil, models.ErrJobNotActive},
		{models.JobStatusFilled, models.ErrJobFilled, models.ErrJobFilled},
	}
	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.legacy, models.LegacyEligibility(tt.status))
			assert.Equal(t, tt.activeOnly, models.ActiveOnlyEligibility(tt.status))
		})
	}
}

func TestEligibilityByName(t *testing.T) {
	for _, name := range []string{"", "legacy"} {
		policy, err := models.EligibilityByName(name)
		require.NoError(t, err)
		assert.Equal(t, models.ErrJobNotActive, policy(models.JobStatusActive))
	}

	policy, err := models.EligibilityByName("active-only")
	require.NoError(t, err)
	assert.NoError(t, policy(models.JobStatusActive))

	_, err = models.EligibilityByName("always")
	assert.Error(t, err)
}

func TestJobStatusJSON(t *testing.T) {
	data, err := json.Marshal(models.JobStatusFilled)
	require.NoError(t, err)
	assert.JSONEq(t, `"Filled"`, string(data))

	var status models.JobStatus
	require.NoError(t, json.Unmarshal([]byte(`"Inactive"`), &status))
	assert.Equal(t, models.JobStatusInactive, status)
	require.NoError(t, json.Unmarshal([]byte(`2`), &status))
	assert.Equal(t, models.JobStatusFilled, status)

	assert.Error(t, json.Unmarshal([]byte(`"Archived"`), &status))
	assert.Error(t, json.Unmarshal([]byte(`9`), &status))
}

func TestApplicationStatusJSON(t *testing.T) {
	data, err := json.Marshal(models.ApplicationStatusAccepted)
	require.NoError(t, err)
	assert.JSONEq(t, `"Accepted"`, string(data))

	var status models.ApplicationStatus
	require.NoError(t, json.Unmarshal([]byte(`"Rejected"`), &status))
	assert.Equal(t, models.ApplicationStatusRejected, status)
	assert.Error(t, json.Unmarshal([]byte(`"Lost"`), &status))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		err      error
	}{
		{"", models.ErrPasswordEmpty},
		{"Sh0rt", models.ErrPasswordShort},
		{"lowercase1", models.ErrPasswordNoUpper},
		{"UPPERCASE1", models.ErrPasswordNoLower},
		{"NoDigitsHere", models.ErrPasswordNoDigit},
		{"Str0ngPass", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.err, models.ValidatePassword(tt.password), tt.password)
	}
}

func TestNewAccount(t *testing.T) {
	reg := models.Registration{ID: 7, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", CompanyName: "Engines"}

	t.Run("job seeker", func(t *testing.T) {
		reg.Role = models.RoleJobSeeker
		account, err := models.NewAccount(reg)
		require.NoError(t, err)
		assert.Equal(t, models.KindJobSeeker, account.Kind())
		_, ok := account.(models.Applicant)
		assert.True(t, ok)
		_, ok = account.(models.CompanyHolder)
		assert.False(t, ok)
	})

	for _, role := range []string{models.RoleEmployer, models.RoleAdmin} {
		t.Run(role, func(t *testing.T) {
			reg.Role = role
			account, err := models.NewAccount(reg)
			require.NoError(t, err)
			assert.Equal(t, models.KindEmployer, account.Kind())
			holder, ok := account.(models.CompanyHolder)
			require.True(t, ok)
			assert.Equal(t, "Engines", holder.Company())
			assert.True(t, account.Base().HasRole(role))
		})
	}

	t.Run("unknown role", func(t *testing.T) {
		reg.Role = "Recruiter"
		_, err := models.NewAccount(reg)
		assert.ErrorIs(t, err, models.ErrInvalidRole)
	})
}

func TestUser_Sanitize(t *testing.T) {
	user := models.User{FirstName: "Ada", LastName: "Lovelace", Password: "Str0ngPass", PasswordHash: "hash"}

	user.Sanitize()

	assert.Empty(t, user.Password)
	assert.Equal(t, "Ada Lovelace", user.DisplayName)

	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hash")
	assert.NotContains(t, string(data), "password")
	assert.Contains(t, string(data), `"name":"Ada Lovelace"`)
}
