package azure

import (
	"context"

	"github.com/bryanwahyu/openai-status/internal/domain/accounts"
	"github.com/bryanwahyu/openai-status/internal/domain/deployments"
)

type deploymentJSON struct {
	Name       string `json:"name"`
	Properties struct {
		Model struct {
			Name    string `json:"name"`
			Version string `json:"version"`
			Format  string `json:"format"`
		} `json:"model"`
		Capabilities map[string]string `json:"capabilities"`
	} `json:"properties"`
}

// ListDeployments runs `az cognitiveservices account deployment list` for one account
// and classifies every entry.
func (c *CLI) ListDeployments(ctx context.Context, account string) ([]deployments.Deployment, error) {
	if err := accounts.ValidateName(account); err != nil {
		return nil, &deployments.DeploymentError{Op: "list", Account: account, Err: err}
	}
	var items []deploymentJSON
	if err := c.query(ctx, &items, "cognitiveservices", "account", "deployment", "list",
		"--name", account, "--resource-group", c.ResourceGroup); err != nil {
		return nil, &deployments.DeploymentError{Op: "list", Account: account, Err: err}
	}

	out := make([]deployments.Deployment, 0, len(items))
	for _, it := range items {
		capability := deployments.Classify(it.Properties.Capabilities)
		if capability == deployments.CapabilityUnclassified {
			c.Log.Warn().Str("service", account).Str("deployment", it.Name).Msg("deployment has no known capabilities")
		}
		out = append(out, deployments.Deployment{
			ID:         it.Name,
			Capability: capability,
			Model:      it.Properties.Model.Name,
			Version:    it.Properties.Model.Version,
			Account:    account,
		})
	}
	return out, nil
}
