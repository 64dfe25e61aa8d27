package domain

// Credential is loaded once at startup and never mutated
type Credential struct {
	UserID   string
	Password string
	Carrier  Carrier
}

// Account derives the portal account string (recomputed on every call)
func (c Credential) Account() string {
	return DeriveAccount(c.UserID, c.Carrier)
}
