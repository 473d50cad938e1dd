// Package model defines the JSON boundary types of the classifier.
//
// Transports (the gRPC service, the CLI's --json output) exchange these
// structs only. Classify hydrates a manifest-store document, runs
// origin.Classify and applies the display formatting callers show to users.
package model
