package constants_test

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/entityscope/orbite/pkg/constants"
)

// Example demonstrates using constants for common file operations
func Example() {
	dir := filepath.Join(os.TempDir(), "orbite-example")
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, constants.DefaultStateFile)
	if err := os.WriteFile(file, []byte("{}"), constants.FilePermissions); err != nil {
		panic(err)
	}

	fmt.Printf("Created dir with %o permissions\n", constants.DirPermissions)
	fmt.Printf("Created file with %o permissions\n", constants.FilePermissions)
	// Output:
	// Created dir with 755 permissions
	// Created file with 644 permissions
}

// Example_timeouts demonstrates timeout constants
func Example_timeouts() {
	client := &http.Client{
		Timeout: constants.DefaultHTTPTimeout,
	}
	fmt.Printf("HTTP timeout: %v\n", client.Timeout)

	ctx, cancel := context.WithTimeout(
		context.Background(),
		constants.DefaultTimeout,
	)
	defer cancel()

	select {
	case <-time.After(10 * time.Millisecond):
		fmt.Println("Operation completed")
	case <-ctx.Done():
		fmt.Println("Operation timed out")
	}

	// Output:
	// HTTP timeout: 30s
	// Operation completed
}

// Example_retryLogic demonstrates using retry constants
func Example_retryLogic() {
	operation := func() error {
		return fmt.Errorf("temporary error")
	}

	for i := 0; i < constants.MaxRetries; i++ {
		if err := operation(); err == nil {
			fmt.Println("Success")
			return
		}
		if i < constants.MaxRetries-1 {
			backoff := constants.RetryBackoff * time.Duration(1<<i)
			if backoff > constants.MaxRetryBackoff {
				backoff = constants.MaxRetryBackoff
			}
			fmt.Printf("Retry %d/%d after %v\n", i+1, constants.MaxRetries, backoff)
		}
	}
	fmt.Printf("Failed after %d retries\n", constants.MaxRetries)

	// Output:
	// Retry 1/3 after 1s
	// Retry 2/3 after 2s
	// Failed after 3 retries
}

// Example_sourceEndpoints shows the upstream endpoint constants
func Example_sourceEndpoints() {
	fmt.Printf("Wikidata API: %s\n", constants.WikidataAPIURL)
	fmt.Printf("INSEE search: %s\n", constants.INSEESearchURL)

	// Output:
	// Wikidata API: https://www.wikidata.org/w/api.php
	// INSEE search: https://recherche-entreprises.api.gouv.fr/search
}

// Example_caching demonstrates the cache TTL constants
func Example_caching() {
	fmt.Printf("Wikidata cache TTL: %v\n", constants.WikidataCacheTTL)
	fmt.Printf("Registry cache TTL: %v\n", constants.RegistryCacheTTL)

	// Output:
	// Wikidata cache TTL: 1h0m0s
	// Registry cache TTL: 30m0s
}
