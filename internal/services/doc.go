// Package services composes the dataset, filter and statistics packages into
// the operations the front ends call.
//
// # Services
//
//	- AnalysisService: loads a city, applies a filter, builds reports and raw-row pages
//	- HealthService: liveness, readiness and version information
//
// Every AnalysisService call validates its Query, runs inside a tracing span
// and records analysis metrics. Errors are returned as internal/errors
// AppErrors so HTTP handlers can map them to problem details.
//
// # Testing
//
// The dataset loader is an interface, so services are tested against either
// fixture files in a temp directory or a testify mock:
//
//	loader := new(MockLoader)
//	loader.On("Load", mock.Anything, dataset.Chicago).Return(table, nil)
//	svc := NewAnalysisService(loader, nil, nil, logger)
package services
