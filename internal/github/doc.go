// Package github is a thin adapter over the GitHub REST API for a
// single repository, built on google/go-github.
//
// Every remote call follows the same discipline:
//
//  1. Wait on the rate limiter (proactive throttle plus a fixed pause
//     when the remaining request budget runs low).
//  2. Perform the API call, retrying transient network and 5xx
//     failures a bounded number of times.
//  3. Feed the response headers back into the rate limiter.
//  4. Translate go-github errors into package error types.
//
// Pagination is drained through collectPages, which stops on the single
// "no next page" signal reported by the API response.
//
// # Authentication
//
// Two methods are supported: a personal access token (sent via an
// OAuth2 static token source) or a username/password pair (basic
// auth). Authenticated requests are limited to 5,000 per hour.
package github
