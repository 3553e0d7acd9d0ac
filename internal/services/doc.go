// Package services implements the Spotify Web API client used by the exporter.
//
// # Paged client
//
// [Client.Get] issues a single authenticated GET. Relative paths are resolved
// against the fixed API base URL; the absolute "next" cursor a paginated
// response supplies is passed through verbatim. Transient failures (transport
// errors, non-2xx statuses, undecodable or structurally invalid JSON) are
// retried a fixed number of times with a fixed delay. Exhausting the retry
// budget terminates the process with a non-zero status: the exporter never
// writes a partial file, so there is nothing useful to do with a partial
// fetch.
//
// listAll follows the cursor chain and concatenates items in page order,
// logging progress against the server-reported total at most once every
// fifteen seconds.
//
// # Authorization
//
// [AuthURL] builds the implicit-grant URL (response_type=token). The token
// arrives at the loopback capture server in internal/server; this package
// only consumes the resulting bearer token.
package services
