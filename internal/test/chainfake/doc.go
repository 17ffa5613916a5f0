// Package chainfake provides an in-memory ledger used by reconciler tests.
//
// Contracts are Go programs keyed by artifact name. A deploy carries the
// marker "fake:<Name>;" followed by ABI encoded constructor arguments, so
// the same bytes flow through the artifact source, the encoder and the
// deployer as they would against a real node. Proxies delegate to their
// implementation program while keeping storage on the proxy account.
package chainfake
