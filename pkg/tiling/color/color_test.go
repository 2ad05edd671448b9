package color

import (
	"fmt"
	"testing"
)

func TestFor(t *testing.T) {
	tests := []struct {
		name      string
		w, h, max float64
		want      RGB
		wantHex   string
	}{
		{"zero", 0, 0, 20, RGB{0, 255, 255}, "#00ffff"},
		{"max square", 20, 20, 20, RGB{255, 0, 0}, "#ff0000"},
		{"half up rounding", 5, 10, 20, RGB{32, 191, 128}, "#20bf80"},
		{"clamped above max", 40, 40, 20, RGB{255, 0, 0}, "#ff0000"},
		{"sign ignored", -5, 0, 20, RGB{0, 191, 255}, "#00bfff"},
		{"non-positive max", 3, 3, 0, RGB{255, 255, 255}, "#ffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := For(tt.w, tt.h, tt.max)
			if got != tt.want {
				t.Errorf("For(%v, %v, %v) = %v, want %v", tt.w, tt.h, tt.max, got, tt.want)
			}
			if hex := got.Hex(); hex != tt.wantHex {
				t.Errorf("Hex() = %q, want %q", hex, tt.wantHex)
			}
		})
	}
}

func TestFill(t *testing.T) {
	if got := Fill(5, 10, 20, false); got != White {
		t.Errorf("Fill(colorize=false) = %q, want %q", got, White)
	}
	if got := Fill(5, 10, 20, true); got != "#20bf80" {
		t.Errorf("Fill(colorize=true) = %q, want %q", got, "#20bf80")
	}
}

func ExampleFor() {
	fmt.Println(For(0, 0, 20).Hex())
	fmt.Println(For(20, 20, 20).Hex())
	fmt.Println(Fill(10, 10, 20, false))
	// Output:
	// #00ffff
	// #ff0000
	// #ffffff
}
