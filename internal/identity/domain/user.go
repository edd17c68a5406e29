package domain

import "time"

type User struct {
	ID    int
	Name  string
	Email string
	Phone string
}

// Session is what survives between runs: who is logged in and the token
// the backend issued. Token may be empty or opaque; expiry is best-effort.
type Session struct {
	UserID     int
	Token      string
	LoggedInAt time.Time
}

type Registration struct {
	Name     string
	Email    string
	Phone    string
	Password string

	// OTPID comes from a verified registration OTP.
	OTPID int
}

const (
	OTPRegistration  = "registration"
	OTPPasswordReset = "forgotPassword"
)

// OTPChallenge tracks an outstanding one-time password. ResendAt gates the
// "resend" action client-side; the backend enforces nothing here.
type OTPChallenge struct {
	Email    string
	Type     string
	ResendAt time.Time
}
