package errors_test

import (
	"fmt"
	"io"
	"testing"

	"codeberg.org/mutker/cpuleds/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	f := errors.New()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"code only", f.New(errors.ErrMalformedSample), "Malformed CPU accounting line"},
		{"wrapped", f.Wrap(errors.ErrReadSample, io.EOF), "Failed to read CPU accounting source: EOF"},
		{"data", f.WithData(errors.ErrInvalidColor, "#zz"), "Invalid color: #zz"},
		{"custom message", f.WithMessage(errors.ErrInternal, "boom"), "boom"},
		{"unknown code", f.New(errors.ErrorCode("mystery")), "mystery"},
		{"data and cause", f.Wrap(errors.ErrSPIOpen, io.EOF).WithData("SPI0.0"), "Failed to open SPI port: SPI0.0: EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestHasCode(t *testing.T) {
	f := errors.New()
	inner := f.New(errors.ErrMalformedSample)
	outer := fmt.Errorf("cycle: %w", f.Wrap(errors.ErrMainLoop, inner))

	assert.True(t, errors.HasCode(outer, errors.ErrMainLoop))
	assert.True(t, errors.HasCode(outer, errors.ErrMalformedSample))
	assert.False(t, errors.HasCode(outer, errors.ErrSPITransmit))
	assert.False(t, errors.HasCode(nil, errors.ErrInternal))
	assert.False(t, errors.HasCode(io.EOF, errors.ErrInternal))
}

func TestIsMatchesCode(t *testing.T) {
	f := errors.New()
	err := fmt.Errorf("read: %w", f.WithData(errors.ErrMalformedSample, "cpu 1 2"))

	assert.ErrorIs(t, err, f.New(errors.ErrMalformedSample))
	assert.NotErrorIs(t, err, f.New(errors.ErrReadSample))
}

func TestCodeOf(t *testing.T) {
	f := errors.New()

	assert.Equal(t, errors.ErrSPITransmit, errors.CodeOf(fmt.Errorf("x: %w", f.New(errors.ErrSPITransmit))))
	assert.Equal(t, errors.ErrInternal, errors.CodeOf(io.EOF))
}
