// Package httpapi exposes the numerology, oracle, blog, chat and email
// services as a small JSON API built on gin.
//
// # Routes
//
//	GET  /api/health
//	POST /api/report
//	POST /api/oracle/roll
//	GET  /api/posts[?tag=]
//	GET  /api/posts/:slug
//	POST /api/chat
//	POST /api/email
//	GET  /metrics
//
// Validation failures return 400 with {"error", "field"}. Missing entities
// return 404. Failed upstream calls return 502 with a generic message and
// services that are not configured return 503.
package httpapi
