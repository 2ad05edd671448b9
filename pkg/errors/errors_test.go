package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	err := New(ErrCodeInvalidConfiguration, "cx must be a multiple of 4, got %d", 30)
	assert.Equal(t, "INVALID_CONFIGURATION: cx must be a multiple of 4, got 30", err.Error())

	wrapped := Wrap(ErrCodeFileNotFound, errors.New("no such file"), "read seeds %s", "a.toml")
	assert.Equal(t, "FILE_NOT_FOUND: read seeds a.toml: no such file", wrapped.Error())
}

func TestWrapKeepsChain(t *testing.T) {
	cause := errors.New("disk on fire")
	err := Wrap(ErrCodeInternal, cause, "write artifact")

	assert.Same(t, cause, errors.Unwrap(err))
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, fmt.Errorf("render: %w", err), cause)
}

func TestLookups(t *testing.T) {
	inner := New(ErrCodeInvalidSeed, "seed 0 has zero width")
	tests := []struct {
		name    string
		err     error
		code    Code
		message string
	}{
		{"coded", inner, ErrCodeInvalidSeed, "seed 0 has zero width"},
		{"fmt wrapped", fmt.Errorf("load: %w", inner), ErrCodeInvalidSeed, "seed 0 has zero width"},
		{"outermost wins", Wrap(ErrCodeInternal, inner, "generate"), ErrCodeInternal, "generate"},
		{"plain", errors.New("plain"), "", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, GetCode(tt.err))
			assert.Equal(t, tt.message, UserMessage(tt.err))
			assert.Equal(t, tt.code != "", Is(tt.err, tt.code))
		})
	}

	assert.False(t, Is(nil, ErrCodeInternal))
	assert.Equal(t, Code(""), GetCode(nil))
	assert.False(t, Is(inner, ErrCodeEmptyResult))
}

func TestClasses(t *testing.T) {
	tests := []struct {
		code  Code
		class Class
	}{
		{ErrCodeInvalidInput, ClassInput},
		{ErrCodeInvalidConfiguration, ClassInput},
		{ErrCodeInvalidPreset, ClassInput},
		{ErrCodeInvalidPath, ClassInput},
		{ErrCodeSeedOutOfBounds, ClassGeneration},
		{ErrCodeMissingCenterDimensions, ClassGeneration},
		{ErrCodeEmptyResult, ClassGeneration},
		{ErrCodeInconsistentSeeds, ClassGeneration},
		{ErrCodeUnsupported, ClassUnsupported},
		{ErrCodeFileNotFound, ClassInternal},
		{ErrCodeInternal, ClassInternal},
		{"", ClassInternal},
		{"SOMETHING_ELSE", ClassInternal},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.class, tt.code.Class())
			assert.Equal(t, tt.class == ClassInput, IsInputError(tt.code))
			assert.Equal(t, tt.class == ClassGeneration, IsGenerationError(tt.code))
		})
	}
}
