// Package fetch provides the interface for retrieving remote CSV
// resources. It abstracts the details of HTTP transport, allowing the
// application to request resource bodies without coupling to a
// specific client implementation.
package fetch
