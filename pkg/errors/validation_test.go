package errors

import (
	"testing"
)

func TestValidatePresetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "classic", false},
		{"valid with dash", "my-preset", false},
		{"valid with underscore", "my_preset", false},
		{"valid with digits", "square2", false},

		{"empty", "", true},
		{"upper case", "Classic", true},
		{"path traversal", "../classic", true},
		{"slash", "a/b", true},
		{"null byte", "foo\x00bar", true},
		{"too long", string(make([]byte, 80)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePresetName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePresetName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPreset) {
				t.Errorf("ValidatePresetName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPreset)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "seeds/classic.toml", false},
		{"absolute", "/tmp/tiling.svg", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	allowed := map[string]bool{"svg": true, "png": true}

	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"single", []string{"svg"}, false},
		{"multiple", []string{"svg", "png"}, false},
		{"padded", []string{" png"}, false},
		{"empty", nil, true},
		{"unknown", []string{"svg", "gif"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormats(tt.formats, allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}
