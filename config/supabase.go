package config

import (
	"fmt"
	"os"

	postgrest "github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"
)

// SupabaseClient serves all table queries against scraped_jobs.
var SupabaseClient *supa.Client

// MetricsClient is a bare PostgREST client used for the stored-procedure
// aggregate queries; the higher-level client does not expose RPC errors.
var MetricsClient *postgrest.Client

// InitSupabase initializes both Supabase clients from environment variables.
// SUPABASE_SERVICE_KEY is preferred; SUPABASE_ANON_KEY is the read-only
// fallback.
func InitSupabase() error {
	supabaseURL := os.Getenv("SUPABASE_URL")
	if supabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL must be set")
	}

	supabaseKey := os.Getenv("SUPABASE_SERVICE_KEY")
	if supabaseKey == "" {
		supabaseKey = os.Getenv("SUPABASE_ANON_KEY")
	}
	if supabaseKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_KEY or SUPABASE_ANON_KEY must be set")
	}

	client, err := supa.NewClient(supabaseURL, supabaseKey, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize Supabase client: %w", err)
	}
	SupabaseClient = client

	MetricsClient = postgrest.NewClient(supabaseURL+"/rest/v1", "", map[string]string{
		"apikey":        supabaseKey,
		"Authorization": fmt.Sprintf("Bearer %s", supabaseKey),
	})
	if MetricsClient.ClientError != nil {
		return fmt.Errorf("failed to initialize PostgREST client: %w", MetricsClient.ClientError)
	}

	return nil
}

// OpenAIKey returns the text-generation API key, empty when unconfigured.
func OpenAIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// ListenAddr returns the HTTP listen address, defaulting to :8080.
func ListenAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}
