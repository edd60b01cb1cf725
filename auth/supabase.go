package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/supabase-community/supabase-go"
)

// ErrUnknownLogin is returned when the login has no matching row
var ErrUnknownLogin = errors.New("unknown login")

// SupabaseAuth implements AuthProvider by looking the login up in a table
type SupabaseAuth struct {
	client *supabase.Client
	table  string
	column string
}

// NewSupabaseAuth creates a new Supabase authentication provider
func NewSupabaseAuth(client *supabase.Client, table, column string) *SupabaseAuth {
	return &SupabaseAuth{client: client, table: table, column: column}
}

// SignIn succeeds when a row with column = login exists
func (s *SupabaseAuth) SignIn(ctx context.Context, login string) (string, error) {
	// the postgrest builder does not take a context
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var rows []map[string]any
	_, err := s.client.From(s.table).
		Select(s.column, "", false).
		Eq(s.column, login).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return "", fmt.Errorf("lookup in %s failed: %w", s.table, err)
	}
	if len(rows) == 0 {
		return "", ErrUnknownLogin
	}
	return fmt.Sprintf("%s found in %s", login, s.table), nil
}
