package supabase

import (
	"fmt"

	"github.com/supabase-community/supabase-go"
)

// These two vars are empty by default. We will override them via -ldflags in production builds.
var (
	embeddedSupabaseURL string
	embeddedSupabaseKey string
)

// NewSupabaseClient creates a client for url and key. Credentials embedded
// at build time take precedence.
func NewSupabaseClient(url, key string) (*supabase.Client, error) {
	if embeddedSupabaseURL != "" && embeddedSupabaseKey != "" {
		url, key = embeddedSupabaseURL, embeddedSupabaseKey
	}
	if url == "" || key == "" {
		return nil, fmt.Errorf("SUPABASE_URL and SUPABASE_KEY must be set in the config or environment")
	}
	return supabase.NewClient(url, key, nil)
}
