// Package auth guards the chat API with static API keys.
package auth

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

const (
	// RoleAsk may send questions through the full pipeline.
	RoleAsk = "ask"
	// RoleRespond may render responses for caller-supplied results.
	RoleRespond = "respond"
)

type Identity struct {
	Subject string
	Roles   []string
}

func (i Identity) HasRole(role string) bool {
	return slices.Contains(i.Roles, role)
}

type APIKeyValidator interface {
	Validate(ctx context.Context, apiKey string) (Identity, bool)
}

type StaticAPIKeyValidator struct {
	keys map[string]Identity
}

// NewStaticAPIKeyValidator parses "key:subject:role|role" entries separated
// by commas. A key without roles is granted every role.
func NewStaticAPIKeyValidator(keys string) (*StaticAPIKeyValidator, error) {
	validator := &StaticAPIKeyValidator{keys: map[string]Identity{}}
	keys = strings.TrimSpace(keys)
	if keys == "" {
		return validator, nil
	}

	for _, entry := range strings.Split(keys, ",") {
		identity, key, err := parseEntry(strings.TrimSpace(entry))
		if err != nil {
			return nil, err
		}
		if _, dup := validator.keys[key]; dup {
			return nil, fmt.Errorf("duplicate static key for subject %q", identity.Subject)
		}
		validator.keys[key] = identity
	}
	return validator, nil
}

func parseEntry(entry string) (Identity, string, error) {
	parts := strings.Split(entry, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Identity{}, "", fmt.Errorf("invalid static key entry %q: expected key:subject[:role|role]", entry)
	}
	key := strings.TrimSpace(parts[0])
	subject := strings.TrimSpace(parts[1])
	if key == "" || subject == "" {
		return Identity{}, "", fmt.Errorf("invalid static key entry %q: empty key/subject", entry)
	}

	roles := []string{RoleAsk, RoleRespond}
	if len(parts) == 3 {
		roles = roles[:0]
		for _, role := range strings.Split(parts[2], "|") {
			role = strings.TrimSpace(role)
			if role == "" {
				continue
			}
			if role != RoleAsk && role != RoleRespond {
				return Identity{}, "", fmt.Errorf("invalid static key entry %q: unknown role %q", entry, role)
			}
			roles = append(roles, role)
		}
		if len(roles) == 0 {
			return Identity{}, "", fmt.Errorf("invalid static key entry %q: at least one role is required", entry)
		}
	}
	slices.Sort(roles)
	return Identity{Subject: subject, Roles: slices.Compact(roles)}, key, nil
}

func (v *StaticAPIKeyValidator) Validate(_ context.Context, apiKey string) (Identity, bool) {
	identity, ok := v.keys[apiKey]
	return identity, ok
}
