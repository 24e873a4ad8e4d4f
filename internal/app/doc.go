// Package app wires the bikeshare components together and manages the
// lifecycle of the HTTP server.
//
// # Initialization Flow
//
//	1. Load configuration from defaults, YAML file and environment
//	2. Initialize logging and OpenTelemetry
//	3. Resolve the data, reports and logs directories
//	4. Build the dataset loader (optionally cached) and services
//	5. Set up the chi router, middleware and handlers
//	6. Serve until interrupted, then shut down gracefully
//
// The console and report front ends reuse NewServiceContainer without the
// HTTP layer.
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
package app
