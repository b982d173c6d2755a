// SPDX-License-Identifier: EPL-2.0

package sqpack

import "errors"

var (
	ErrUnknownRegion        = errors.New("unknown installation region")
	ErrInstallationNotFound = errors.New("could not autodetect installation path")
	ErrUnknownCategory      = errors.New("unknown sqpack category")
	ErrFileNotFound         = errors.New("file not found in sqpack")
	ErrBadIndex             = errors.New("malformed sqpack index")
	ErrBadData              = errors.New("malformed sqpack data entry")
	ErrUnsupportedEntry     = errors.New("unsupported sqpack entry")
)
