// Package middleware groups the Fiber middleware used by the serve command.
//
//   - rayid: reuses a valid X-Ray-ID request header or generates one, stores it
//     in Locals under "ray_id" and echoes it on the response.
//   - auth: requires X-API-Key to match server.api_key. An empty key rejects
//     every request, so /health is registered before it.
package middleware
