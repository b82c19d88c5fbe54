package request

type PasskeyRegisteredEvent struct {
	UserId       uint   `json:"user_id"`
	Email        string `json:"email"`
	CredentialId string `json:"credential_id"`
	Transports   string `json:"transports"`
}

type PasskeyAuthenticatedEvent struct {
	UserId       uint   `json:"user_id"`
	Email        string `json:"email"`
	CredentialId string `json:"credential_id"`
	SignCount    uint32 `json:"sign_count"`
}
