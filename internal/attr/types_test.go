package attr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUnit(t *testing.T) {
	tests := []struct {
		name    string
		unit    Unit
		wantErr bool
	}{
		{"complete", Unit{Name: "метр", Plural: "метры", Symbol: "м"}, false},
		{"five rune symbol", Unit{Name: "оборот", Plural: "обороты", Symbol: "об/мн"}, false},
		{"empty", Unit{}, true},
		{"blank name", Unit{Name: "  ", Plural: "метры", Symbol: "м"}, true},
		{"missing plural", Unit{Name: "метр", Symbol: "м"}, true},
		{"blank symbol", Unit{Name: "метр", Plural: "метры", Symbol: "\t"}, true},
		{"long symbol", Unit{Name: "метр", Plural: "метры", Symbol: "метрыы"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUnit(tt.unit)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidUnit)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
