// Package server hosts the transient loopback listener that captures the
// OAuth implicit-grant token.
//
// # Flow
//
// Spotify redirects the browser to /redirect with the access token in the
// URL fragment. Fragments are never sent to servers, so /redirect serves a
// tiny page that re-navigates to /token with the fragment converted into a
// query string. /token extracts the token, confirms to the user, and
// resolves the capture. Any other path is a 404.
//
// # Termination
//
// The capture has exactly one success terminal. [CaptureHandler] delivers a
// typed [CaptureResult] on a channel [Capture] selects on; handler faults are
// recovered and surfaced as a fatal capture error rather than logged and
// ignored. There is no request or overall timeout: the process blocks until
// the user completes or abandons the browser flow.
package server
