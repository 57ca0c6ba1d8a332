// Package moodle implements the Moodle web service ports.
//
// Client talks to the REST endpoint (webservice/rest/server.php) and the
// draft file upload endpoint (webservice/upload.php), authenticating every
// request with a web service token. ContentService wraps the update
// functions of the local_modcontentservice plugin.
//
// Requests are throttled with a token bucket. Moodle reports most failures
// as HTTP 200 with an exception payload; those surface as *APIError.
package moodle
