package domain

// SessionState is the controller's view of the probed address
type SessionState uint8

const (
	// Offline: no account on record
	Offline SessionState = iota
	// Online: the account on record is ours
	Online
	// OnlineAsOther: some other account holds the address
	OnlineAsOther
)

func (s SessionState) String() string {
	switch s {
	case Online:
		return "online"
	case OnlineAsOther:
		return "online-as-other"
	default:
		return "offline"
	}
}

// Active reports whether any session is bound to the address.
func (s SessionState) Active() bool {
	return s == Online || s == OnlineAsOther
}

// StatusRecord is the decoded body of the status endpoint
type StatusRecord struct {
	Result  string
	Message string
	Account string // empty when no account is on record
}

// Classify maps the record to a SessionState relative to account.
func (r StatusRecord) Classify(account string) SessionState {
	switch {
	case r.Account == "":
		return Offline
	case r.Account == account:
		return Online
	default:
		return OnlineAsOther
	}
}

// Session is one probe result
type Session struct {
	State  SessionState
	Record StatusRecord
}
