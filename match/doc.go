// Package match implements the tiers of the duplicate-detection cascade.
//
// Each Matcher evaluates one tier: filename fingerprints, extracted-text
// token overlap, or embedding similarity. Matchers only compare; the
// escalation policy that chains them lives in the pipeline package.
package match
