package server

// Server is the lifecycle of the application's HTTP server.
type Server interface {
	// RunServer serves requests until SIGTERM, SIGINT or SIGQUIT, then
	// shuts down gracefully within the configured shutdown timeout.
	RunServer()

	// Shutdown stops accepting connections and waits for in-flight requests.
	Shutdown()
}
