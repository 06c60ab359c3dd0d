// Package middleware groups the Fiber middleware mounted by the start command.
//
//   - rayid: tags every request with an X-Ray-ID, reusing the client's when present,
//     so a scan and the finalize that follows can be traced through the logs.
//   - auth: requires X-API-Key on every route registered after it. Swagger stays public.
package middleware
