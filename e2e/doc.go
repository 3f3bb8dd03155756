//go:build e2e

// Package e2e provides end-to-end tests for the browser layer and the
// acceptance suite.
//
// These tests are isolated from the standard test suite via build tags.
// They need a Playwright driver and browsers (see `buggycars install`)
// and are intended for CI pipelines or explicit local testing.
//
// Running E2E tests:
//
//	go test -tags=e2e ./e2e/...
//	BROWSER=firefox go test -tags=e2e ./e2e/...
//
// Running all tests except E2E:
//
//	go test ./...
//
// E2E tests use:
//   - the demoapp server as the site under test
//   - browser.Manager for the session, context and page lifecycle
//   - the runner package to drive the embedded features through godog
//
// Test isolation:
// Each test starts its own server on a random port and its own browser
// session, so every test registers fresh users.
package e2e
