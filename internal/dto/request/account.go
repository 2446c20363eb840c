package request

type SendOTPRequest struct {
	Number string `json:"number" validate:"required,len=10,numeric"`
}

type VerifyOTPRequest struct {
	Number string `json:"number" validate:"required,len=10,numeric"`
	OTP    string `json:"otp" validate:"required,numeric,min=4,max=10"`
}

// UpdateDetailsRequest completes the profile of a freshly verified account.
type UpdateDetailsRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Address string `json:"address" validate:"max=500"`
	PIN     string `json:"pin" validate:"required,len=4,numeric,startsnotwith=0"`
}
