package domain

// Default booking configuration values
const (
	DefaultBufferMinutes  = 5
	DefaultHoldTTLMinutes = 10
)

// Business validation constants
const (
	MinBufferMinutes  = 0
	MaxBufferMinutes  = 60
	MinHoldTTLMinutes = 1
	MaxHoldTTLMinutes = 120

	MaxClientNameLength  = 120
	MaxClientEmailLength = 254
	MaxClientPhoneLength = 32
	MaxReferralCodeLen   = 32
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
