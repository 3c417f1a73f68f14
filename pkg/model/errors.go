package model

import "github.com/pkg/errors"

// ErrConfiguration is wrapped by every error that rejects a roster or grid before a run starts
var ErrConfiguration = errors.New("configuration error")

func configurationErrorf(format string, args ...any) error {
	return errors.Wrapf(ErrConfiguration, format, args...)
}
