// Package campusclient is the Go client for the CampusCraft API.
//
// It covers authentication and the email verification flow, profiles, job
// postings, applications, messaging, and the streaming AI assistant. A
// Client is safe for concurrent use; the bearer token it holds is swapped
// atomically via SetToken and ClearToken, typically driven by
// pkg/sessionguard.
//
// Success and failure are decided purely by HTTP status: any non-2xx
// response yields an *APIError carrying the server's error message when one
// was provided.
package campusclient
