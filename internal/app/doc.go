// Package app wires the cleaning service together and manages its lifecycle.
//
// NewApplication resolves paths, initializes OpenTelemetry, builds the
// services and the chi router, and creates the HTTP server:
//
//	cfg, _ := config.Load("")
//	application, err := app.NewApplication(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
//
// Run blocks until SIGINT or SIGTERM and then shuts the server down within
// Server.ShutdownTimeout.
package app
