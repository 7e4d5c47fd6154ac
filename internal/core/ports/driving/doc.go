// Package driving provides interfaces for the application's primary
// (inbound) ports, consumed by the CLI and other collaborators.
package driving
