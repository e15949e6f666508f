// Package correlate scores accepted documents against the tracked claim
// registry. Each document-claim pair yields a contradiction score from the
// document's relevancy, keyword hits, date proximity, and evidence type;
// per-claim aggregates roll those up into a prosecutability estimate.
package correlate
