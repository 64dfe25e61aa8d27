package domain

import "fmt"

// Carrier selects the portal account suffix. The set is closed: values can only
// be obtained from the package variables or ParseCarrier. The zero value is EDU.
type Carrier struct {
	name   string
	suffix string
}

var (
	EDU  = Carrier{}
	CMCC = Carrier{name: "CMCC", suffix: "@cmcc"}
	CT   = Carrier{name: "CT", suffix: "@njxy"}
)

var carriers = []Carrier{EDU, CMCC, CT}

// ParseCarrier maps a config value (EDU, CMCC, CT) to a Carrier.
func ParseCarrier(s string) (Carrier, error) {
	for _, c := range carriers {
		if c.String() == s {
			return c, nil
		}
	}
	return Carrier{}, fmt.Errorf("unknown carrier %q (want EDU, CMCC or CT)", s)
}

func (c Carrier) String() string {
	if c.name == "" {
		return "EDU"
	}
	return c.name
}

// DeriveAccount returns the portal account for userID under carrier c.
func DeriveAccount(userID string, c Carrier) string {
	return userID + c.suffix
}
