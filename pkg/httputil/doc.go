// Package httputil provides HTTP fetching with retry logic and caching.
//
// The server and CLI both pull their input table from remote CSV endpoints
// that are occasionally flaky; [Fetcher] smooths that over with exponential
// backoff for transient failures and a byte cache so repeated renders of the
// same dataset skip the network entirely.
package httputil
