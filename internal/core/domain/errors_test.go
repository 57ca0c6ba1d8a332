package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotConfigured", ErrNotConfigured},
		{"ErrUnsupportedFormat", ErrUnsupportedFormat},
		{"ErrParse", ErrParse},
		{"ErrUnknownSpecialType", ErrUnknownSpecialType},
		{"ErrUnexpectedContent", ErrUnexpectedContent},
		{"ErrEmptyManifest", ErrEmptyManifest},
		{"ErrVerification", ErrVerification},
		{"ErrRemoteCall", ErrRemoteCall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Distinct tests that manifest errors do not match each other
func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrParse, ErrUnsupportedFormat))
	assert.False(t, errors.Is(ErrEmptyManifest, ErrUnexpectedContent))
	assert.False(t, errors.Is(ErrVerification, ErrRemoteCall))
}

func TestManifestError(t *testing.T) {
	inner := fmt.Errorf("%w: module 7 is supposed to be of type mod_resource", ErrVerification)
	err := &ManifestError{Location: "unit/intro.yaml", Err: inner}

	assert.Equal(t, "unit/intro.yaml: verification failed: module 7 is supposed to be of type mod_resource", err.Error())
	assert.ErrorIs(t, err, ErrVerification)

	wrapped := fmt.Errorf("upload: %w", err)
	var me *ManifestError
	require.ErrorAs(t, wrapped, &me)
	assert.Equal(t, "unit/intro.yaml", me.Location)
}

func TestLocationOf(t *testing.T) {
	loc, ok := LocationOf(fmt.Errorf("x: %w", &ManifestError{Location: "a.md:children[0]", Err: ErrEmptyManifest}))
	assert.True(t, ok)
	assert.Equal(t, "a.md:children[0]", loc)

	_, ok = LocationOf(ErrParse)
	assert.False(t, ok)
}
