package accounts

import "context"

// Directory port (discovery of accounts + access keys on the management plane)
type Directory interface {
	ListAccounts(ctx context.Context) (*Set, error)
	FetchKey(ctx context.Context, name string) (string, error)
	Login(ctx context.Context, creds Credentials) error
}

// Credentials is the service-principal triple used for the management-plane login.
type Credentials struct {
	AppID    string
	Secret   string
	TenantID string
}

// Complete reports whether all three fields are set.
func (c Credentials) Complete() bool {
	return c.AppID != "" && c.Secret != "" && c.TenantID != ""
}

// Services lists every account and fetches its key, one call per account.
func Services(ctx context.Context, d Directory) (*Set, error) {
	set, err := d.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, name := range set.Names() {
		key, err := d.FetchKey(ctx, name)
		if err != nil {
			return nil, err
		}
		set.SetKey(name, key)
	}
	return set, nil
}
