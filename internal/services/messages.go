package services

const (
	MsgUnexpected          = "An unexpected error occurred. Please try again later."
	MsgConcurrencyConflict = "A concurrency conflict occurred."
	MsgTooManyAttempts     = "Too many login attempts. Please try again later."

	MsgJWTSecretEmpty      = "JWT Secret cannot be null or empty."
	MsgJWTIssuerEmpty      = "Valid Issuer cannot be null or empty."
	MsgJWTAudienceEmpty    = "Valid Audience cannot be null or empty."
	MsgJWTExpiryEmpty      = "Token Expiry Time In Hour cannot be null or empty."
	MsgJWTExpiryNotNumeric = "Token Expiry Time In Hour is not a valid number."

	MsgPasswordRequired = "Password is required."
	MsgRoleRequired     = "Role is required."
	MsgRoleInvalid      = "Invalid ROLE!"
	MsgEmailRequired    = "Email is required."
	MsgInvalidUsername  = "Invalid Username."
	MsgPasswordEmpty    = "Password cannot be null or empty."
	MsgInvalidPassword  = "Invalid Password."
	MsgCompanyRequired  = "Company name is required."
	MsgEmailTaken       = "An account with the same email already exists."

	MsgJobIDNotExists       = "Job ID does not exist."
	MsgJobSeekerIDNotExists = "Job Seeker ID does not exist."
	MsgEmployerIDNotExists  = "Employer with the specified ID does not exist."
	MsgCVStoreUnavailable   = "CV storage is not configured."
)

// entityMessages are the client-facing messages of one entity type.
type entityMessages struct {
	duplicate string
	mismatch  string
	notFound  string
	// getNotFound is formatted with the requested id.
	getNotFound string
}

var (
	jobMessages = entityMessages{
		duplicate:   "A Job Posting with the same ID already exists.",
		mismatch:    "Job ID mismatch.",
		notFound:    MsgJobIDNotExists,
		getNotFound: "The Requested Job Posting With Id: %d does not Exist!",
	}
	applicationMessages = entityMessages{
		duplicate:   "An Application with the same ID already exists.",
		mismatch:    "Application ID mismatch.",
		notFound:    "The application with the specified ID could not be found.",
		getNotFound: "The Requested Application with Id: %d does not Exist!",
	}
	jobSeekerMessages = entityMessages{
		duplicate:   "A JobSeeker with the same ID already exists.",
		mismatch:    "JobSeeker ID mismatch.",
		notFound:    MsgJobSeekerIDNotExists,
		getNotFound: "The Requested Job Seeker With Id: %d does not Exist!",
	}
	employerMessages = entityMessages{
		duplicate:   "An employer with the same ID already exists.",
		mismatch:    "Employer ID mismatch.",
		notFound:    MsgEmployerIDNotExists,
		getNotFound: "The Requested Employer With Id: %d does not Exist!",
	}
)
