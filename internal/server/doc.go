// Package server runs the short-lived HTTP server that receives the OAuth
// redirect during "spx auth login --listen".
//
// # Router
//
// [Router] wraps [http.ServeMux] with a middleware stack. [Middleware] is
// applied in reverse order, so the first one added is the outermost.
// [Logging] and [Recover] are the stock middleware.
//
// # Callback
//
// [CallbackHandler] serves the redirect URI. It checks the state parameter,
// extracts the authorization code with [auth.ParseCodeFromURL], exchanges it
// and delivers exactly one [Result]. Later requests are rejected.
//
// [Listen] binds the server and [CallbackHandler.Wait] blocks until the
// result arrives, the server fails or the context ends.
package server
