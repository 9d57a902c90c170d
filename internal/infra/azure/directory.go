package azure

import (
	"context"
	"errors"

	"github.com/bryanwahyu/openai-status/internal/domain/accounts"
)

type accountJSON struct {
	Name       string `json:"name"`
	Location   string `json:"location"`
	Kind       string `json:"kind"`
	Properties struct {
		Endpoint string `json:"endpoint"`
	} `json:"properties"`
}

type keysJSON struct {
	Key1 string `json:"key1"`
	Key2 string `json:"key2"`
}

// ListAccounts runs `az cognitiveservices account list -g <rg>`.
func (c *CLI) ListAccounts(ctx context.Context) (*accounts.Set, error) {
	var items []accountJSON
	if err := c.query(ctx, &items, "cognitiveservices", "account", "list", "--resource-group", c.ResourceGroup); err != nil {
		return nil, &accounts.DirectoryError{Op: "list", Err: err}
	}

	set := accounts.NewSet()
	for _, it := range items {
		if it.Name == "" {
			return nil, &accounts.DirectoryError{Op: "list", Err: errors.New("account without name")}
		}
		set.Add(accounts.ServiceAccount{
			Name:     it.Name,
			Endpoint: it.Properties.Endpoint,
			Location: it.Location,
			Kind:     it.Kind,
		})
	}
	c.Log.Info().Int("count", set.Len()).Str("resource_group", c.ResourceGroup).Msg("listed accounts")
	return set, nil
}

// FetchKey runs `az cognitiveservices account keys list -g <rg> -n <name>` and returns key1.
func (c *CLI) FetchKey(ctx context.Context, name string) (string, error) {
	if err := accounts.ValidateName(name); err != nil {
		return "", &accounts.DirectoryError{Op: "keys", Account: name, Err: err}
	}
	var keys keysJSON
	if err := c.query(ctx, &keys, "cognitiveservices", "account", "keys", "list", "--resource-group", c.ResourceGroup, "--name", name); err != nil {
		return "", &accounts.DirectoryError{Op: "keys", Account: name, Err: err}
	}
	if keys.Key1 == "" {
		return "", &accounts.DirectoryError{Op: "keys", Account: name, Err: errors.New("key1 missing from response")}
	}
	return keys.Key1, nil
}

// Login runs a service-principal login. Incomplete credentials are a no-op:
// the ambient az session is used instead.
func (c *CLI) Login(ctx context.Context, creds accounts.Credentials) error {
	if !creds.Complete() {
		c.Log.Debug().Msg("service principal not configured, using existing az session")
		return nil
	}
	_, err := c.run(ctx, "login", "--service-principal",
		"--username", creds.AppID,
		"--password", creds.Secret,
		"--tenant", creds.TenantID,
		"--output", "none",
	)
	if err != nil {
		return &accounts.DirectoryError{Op: "login", Err: err}
	}
	c.Log.Info().Str("app_id", creds.AppID).Str("tenant", creds.TenantID).Msg("logged in with service principal")
	return nil
}
