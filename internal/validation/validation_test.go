package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "Password123!", false},
		{"Exactly Min Length", "Abcdefghij1!", false},
		{"Exactly Max Length", "A" + strings.Repeat("b", 125) + "1!", false},
		{"Too Short", "Short1!", true},
		{"Too Long", "A" + strings.Repeat("b", 126) + "1!", true},
		{"No Uppercase", "password123!", true},
		{"No Lowercase", "PASSWORD123!", true},
		{"No Digit", "PasswordOnly!", true},
		{"No Special", "Password1234", true},
		{"Unicode Letters", "ÅngstromPass12!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid", "quote_fan42", false},
		{"With Hyphen", "quote-fan", false},
		{"Too Short", "qf", true},
		{"Too Long", strings.Repeat("q", 31), true},
		{"Illegal Characters", "quote fan!", true},
		{"Leading Underscore", "_quotefan", true},
		{"Trailing Hyphen", "quotefan-", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "reader@example.com", false},
		{"With Plus Tag", "reader+quotes@example.co.uk", false},
		{"Missing At", "reader.example.com", true},
		{"Missing Domain", "reader@", true},
		{"Missing TLD", "reader@example", true},
		{"Too Long", strings.Repeat("a", 250) + "@b.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
