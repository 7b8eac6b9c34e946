package contract

import (
	"errors"
	"testing"
)

func TestValidContractName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"edition", false},
		{"cw721", false},
		{"cw", true},
		{"1edition", true},
		{"edition_contract_too_long", true},
		{"bad-name", true},
		{"edition.", true},
		{"xedition.v1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidContractName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidContractName(%s) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrParameter) {
				t.Errorf("ValidContractName(%s) should be a param error, got %v", tt.name, err)
			}
		})
	}
}
