package domain

import "testing"

func TestStatusRecord_Classify(t *testing.T) {
	tests := []struct {
		name   string
		onFile string
		want   SessionState
		active bool
	}{
		{"absent", "", Offline, false},
		{"same account", "u1@cmcc", Online, true},
		{"other account", "someone", OnlineAsOther, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusRecord{Result: "1", Message: "ok", Account: tt.onFile}.Classify("u1@cmcc")
			if got != tt.want {
				t.Errorf("Classify = %s, want %s", got, tt.want)
			}
			if got.Active() != tt.active {
				t.Errorf("Active = %v, want %v", got.Active(), tt.active)
			}
		})
	}
}
