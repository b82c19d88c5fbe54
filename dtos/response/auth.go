package response

type RegisterResponse struct {
	UserId uint   `json:"user_id"`
	Email  string `json:"email"`
}

type TwoFASetupResponse struct {
	Secret string `json:"secret"`
	QRCode []byte `json:"qr_code"`
}

type GoogleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
}
