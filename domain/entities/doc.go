// Package entities defines the core domain types of the policy host:
// the canonical callback request union the dispatcher consumes, the
// verification descriptors carried by signature requests, the policy
// evaluation responses, and the structured error detail shared with the
// wire layer.
package entities
