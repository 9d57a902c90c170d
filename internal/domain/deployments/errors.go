package deployments

import "fmt"

// DeploymentError wraps a failed or malformed deployment listing.
type DeploymentError struct {
	Op      string
	Account string
	Err     error
}

func (e *DeploymentError) Error() string {
	return fmt.Sprintf("deployments %s %s: %v", e.Op, e.Account, e.Err)
}

func (e *DeploymentError) Unwrap() error { return e.Err }
