package errors

import (
	"testing"
)

func TestValidateModelPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "OrderModel.uml", false},
		{"valid nested", "models/shop/OrderModel.xmi", false},
		{"valid dotted name", "my.model.yaml", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"absolute", "/etc/passwd", true},
		{"path traversal", "models/../../secret.uml", true},
		{"leading traversal", "../secret.uml", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "models\\x.uml", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateModelPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateModelPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateModelPath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "out/diagram.png", false},
		{"absolute", "/tmp/diagram.svg", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"null byte", "a\x00.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
