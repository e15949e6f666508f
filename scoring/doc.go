// Package scoring computes the four scoring dimensions for accepted
// documents. Scoring is deterministic arithmetic over a classification;
// the AI work happens upstream in the classifier.
package scoring
