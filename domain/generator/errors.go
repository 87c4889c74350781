package generator

import (
	"errors"

	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/infrastructure/qrcode"
)

var (
	ErrEmptyURL                 = errors.New(constant.ErrEmptyURL)
	ErrInvalidSize              = errors.New(constant.ErrInvalidSize)
	ErrInvalidBorder            = errors.New(constant.ErrInvalidBorder)
	ErrEncodingCapacityExceeded = qrcode.ErrCapacityExceeded
	ErrPersistence              = errors.New(constant.ErrPersistence)
	ErrNotFound                 = errors.New(constant.ErrFileNotFound)
	ErrInvalidFilename          = errors.New(constant.ErrInvalidFilename)
)

// IsValidation reports whether err was caused by bad user input
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyURL) ||
		errors.Is(err, ErrInvalidSize) ||
		errors.Is(err, ErrInvalidBorder)
}
