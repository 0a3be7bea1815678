package csc_test

import (
	"errors"
	"testing"

	"i4.energy/across/cscctl/csc"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "Upper case code", input: "XEO", want: "XEO"},
		{name: "Lower case code", input: "zto", want: "ZTO"},
		{name: "Surrounding whitespace", input: "  peo\n", want: "PEO"},
		{name: "Too short", input: "XE", wantErr: true},
		{name: "Too long", input: "XEOX", wantErr: true},
		{name: "Digits", input: "X3O", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
		{name: "Non ASCII letters", input: "ÑÑÑ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := csc.Normalize(tt.input)
			if tt.wantErr {
				if !errors.Is(err, csc.ErrInvalidCode) {
					t.Errorf("expected ErrInvalidCode, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
