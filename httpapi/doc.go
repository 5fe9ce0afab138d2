// Package httpapi exposes a db.Manager over HTTP via go-chi/chi, and
// provides a thin Client for talking to that surface from Go.
package httpapi
