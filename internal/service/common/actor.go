//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"
	"os/user"

	api "github.com/oshokin/residency/internal/api/grpc/residency"
)

// DetectActor gathers host and user information sent along with remote evaluations.
func DetectActor() (*api.Actor, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	return &api.Actor{
		Hostname: hostname,
		Username: currentUser.Username,
	}, nil
}
