// Package http implements the HTTP handlers of the bikeshare statistics API.
// Handlers stay thin: they parse and validate query parameters, delegate to
// the analysis service and render the result.
//
// # Routes
//
//	GET /api/cities                 supported cities and dataset availability
//	GET /api/stats                  full report for ?city=&month=&day=
//	GET /api/stats/{section}        one of time, stations, duration, users
//	GET /api/rows                   five raw rows starting at ?offset=
//	GET /api/export                 report download, ?format=csv|xlsx
//
// Successful responses are wrapped as {"status":"success","data":...}.
//
// # Error Handling
//
// All errors follow RFC 7807 Problem Details:
//
//	{
//	    "type": "/errors/dataset/not-found",
//	    "title": "Dataset Not Found",
//	    "status": 404,
//	    "detail": "unknown city \"paris\"",
//	    "instance": "/api/stats"
//	}
package http
