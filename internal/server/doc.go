// Package server runs the HTTP server of the application, including
// startup, signal handling and graceful shutdown.
package server
