// Package youtube aggregates descriptive metadata for a video identifier.
//
// The primary path uses the credentialed Data API for the video snippet plus
// two auxiliary reads (caption-track listing, relevance-ordered comments) that
// run concurrently. Without a credential, or when the snippet lookup fails,
// the aggregator degrades to the public oEmbed endpoint and finally to an
// all-empty record carrying only the constructed thumbnail URL. No path ever
// returns an error: metadata quality drives ranking accuracy, so the
// aggregator maximizes signal when possible and shrinks gracefully otherwise.
package youtube
