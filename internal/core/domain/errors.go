package domain

import "errors"

// Domain errors represent manifest and synchronisation failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured indicates a required setting (base URL, token) is missing.
	ErrNotConfigured = errors.New("not configured")

	// Manifest Errors.

	// ErrUnsupportedFormat indicates a manifest file extension no reader handles.
	ErrUnsupportedFormat = errors.New("unsupported manifest format")

	// ErrParse indicates a manifest has the wrong shape: an unknown mod tag,
	// a missing required field or a field of the wrong type.
	ErrParse = errors.New("parse error")

	// ErrUnknownSpecialType indicates a $-prefixed mod tag other than $section.
	ErrUnknownSpecialType = errors.New("unknown special type")

	// ErrUnexpectedContent indicates a manifest without a mod tag that still
	// carries keys other than children.
	ErrUnexpectedContent = errors.New("unexpected content")

	// ErrEmptyManifest indicates a manifest with neither a module body nor children.
	ErrEmptyManifest = errors.New("empty manifest")

	// Remote Errors.

	// ErrVerification indicates a manifest disagrees with the remote course:
	// wrong module type, wrong course or a section that does not exist.
	ErrVerification = errors.New("verification failed")

	// ErrRemoteCall indicates a failed remote call, either at transport level
	// or because an update operation did not report success.
	ErrRemoteCall = errors.New("remote call failed")
)

// ManifestError tags an error with the manifest location it originated from.
// Location is a file path, or a synthetic path such as
// "course.yaml:children[2].children[0]" for inline children.
type ManifestError struct {
	Location string
	Err      error
}

func (e *ManifestError) Error() string {
	return e.Location + ": " + e.Err.Error()
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// LocationOf returns the location of the first ManifestError in err's chain.
func LocationOf(err error) (string, bool) {
	var me *ManifestError
	if errors.As(err, &me) {
		return me.Location, true
	}
	return "", false
}
