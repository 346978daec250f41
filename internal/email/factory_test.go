package email

import "testing"

type fakeEmailConfig struct {
	enabled  bool
	smtpHost string
}

func (f fakeEmailConfig) GetEmailEnabled() bool       { return f.enabled }
func (f fakeEmailConfig) GetSMTPHost() string         { return f.smtpHost }
func (f fakeEmailConfig) GetSMTPPort() int            { return 587 }
func (f fakeEmailConfig) GetSMTPUsername() string     { return "user" }
func (f fakeEmailConfig) GetSMTPPassword() string     { return "pass" }
func (f fakeEmailConfig) GetEmailFromName() string    { return "Realty Portal" }
func (f fakeEmailConfig) GetEmailFromAddress() string { return "noreply@example.com" }
func (f fakeEmailConfig) GetNotifyAddress() string    { return "inbox@example.com" }

func TestNewSender(t *testing.T) {
	tests := []struct {
		name    string
		cfg     fakeEmailConfig
		wantNil bool
	}{
		{name: "enabled with host", cfg: fakeEmailConfig{enabled: true, smtpHost: "smtp.example.com"}, wantNil: false},
		{name: "disabled", cfg: fakeEmailConfig{enabled: false, smtpHost: "smtp.example.com"}, wantNil: true},
		{name: "enabled without host", cfg: fakeEmailConfig{enabled: true}, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := NewSender(tt.cfg)
			if (sender == nil) != tt.wantNil {
				t.Errorf("NewSender() nil = %v, want %v", sender == nil, tt.wantNil)
			}
		})
	}
}
