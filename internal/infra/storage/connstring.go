package storage

import (
	"errors"
	"fmt"
	"strings"
)

// ConnectionInfo are the fields of a storage connection string needed to build blob URLs.
type ConnectionInfo struct {
	Scheme         string
	AccountName    string
	EndpointSuffix string
}

// ParseConnectionString reads a semicolon-delimited key=value connection string
// positionally: field 0 is the protocol, field 1 the account name and field 3
// the endpoint suffix. Keys are not checked, only positions.
func ParseConnectionString(conn string) (ConnectionInfo, error) {
	fields := strings.Split(strings.TrimSuffix(strings.TrimSpace(conn), ";"), ";")
	if len(fields) < 4 {
		return ConnectionInfo{}, &SinkError{Op: "parse", Err: fmt.Errorf("connection string has %d fields, want at least 4", len(fields))}
	}
	value := func(i int) (string, error) {
		kv := strings.SplitN(fields[i], "=", 2)
		if len(kv) != 2 {
			return "", &SinkError{Op: "parse", Err: fmt.Errorf("connection string field %d is not key=value", i)}
		}
		return kv[1], nil
	}

	var info ConnectionInfo
	var err error
	if info.Scheme, err = value(0); err != nil {
		return ConnectionInfo{}, err
	}
	if info.AccountName, err = value(1); err != nil {
		return ConnectionInfo{}, err
	}
	if info.EndpointSuffix, err = value(3); err != nil {
		return ConnectionInfo{}, err
	}
	if info.Scheme == "" || info.AccountName == "" || info.EndpointSuffix == "" {
		return ConnectionInfo{}, &SinkError{Op: "parse", Err: errors.New("connection string has empty protocol, account or suffix")}
	}
	return info, nil
}

// BlobURL is <scheme>://<account>.<suffix>/<container>/<blob>.
func (c ConnectionInfo) BlobURL(container, blob string) string {
	return fmt.Sprintf("%s://%s.%s/%s/%s", c.Scheme, c.AccountName, c.EndpointSuffix, container, blob)
}
