package deployments

import "context"

// Catalog port (model deployments per account)
type Catalog interface {
	ListDeployments(ctx context.Context, account string) ([]Deployment, error)
}
