package locomotion

import "errors"

var (
	// ErrMissingCollaborator is returned when a required collaborator is nil.
	ErrMissingCollaborator = errors.New("locomotion: missing collaborator")
	// ErrInvalidConfig is returned for negative or non-finite settings.
	ErrInvalidConfig = errors.New("locomotion: invalid config")
)
