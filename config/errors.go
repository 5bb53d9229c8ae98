package config

import "errors"

// ErrMissingCredentials is returned when the upstream token or API key is
// absent. Handlers surface it as a distinct error code so operators can tell
// a deployment problem apart from an upstream outage.
var ErrMissingCredentials = errors.New("missing upstream credentials")
