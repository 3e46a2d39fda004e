// Package http implements the HTTP handlers of the cleaning service.
// Handlers stay thin: they parse the request, call a service through a small
// interface and render either the JSON result or an RFC 7807 problem.
//
// # Endpoints
//
//	POST /upload                multipart field "file" (.csv or .xlsx)
//	GET  /download/{filename}   cleaned CSV as an attachment
//	GET  /api/health            liveness summary
//	GET  /api/health/ready      storage readiness, 503 when not ready
//	GET  /api/health/live       process liveness
//	GET  /api/version           build information
//
// # Error Handling
//
// Every failure goes through errors.ErrorHandler, which renders
//
//	{
//	    "type": "/errors/upload/unsupported-format",
//	    "title": "Bad Request",
//	    "status": 400,
//	    "detail": "Unsupported file format",
//	    "instance": "/upload",
//	    "error_code": "UNSUPPORTED_FORMAT",
//	    "error": "Unsupported file format",
//	    "trace_id": "4bf92f3577b34da6a3ce929d0e0e4736"
//	}
//
// # Testing
//
// Handlers are tested with httptest against testify mocks of the service
// interfaces declared in service_interfaces.go.
package http
