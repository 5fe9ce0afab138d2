// Package store implements the Store aggregate (§3.4/§4.6): a fixed
// "DADDYSTORE" header plus format version wrapping an ordered set of
// String-keyed souris.Value pairs, along with its lossy JSON interop.
package store
