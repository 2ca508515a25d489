// Package middleware groups the fiber middleware registered by the serve command.
//
//   - rayid: assigns every request an id, stored in the "ray_id" local and echoed
//     in the X-Ray-ID response header. An incoming X-Ray-ID is kept.
//   - auth: rejects requests whose X-API-Key (or bearer token) does not match the
//     configured key. An empty key turns the check off.
//
// Ray ids are registered before request logging and auth after the public swagger
// routes.
package middleware
