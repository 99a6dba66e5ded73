// Package metrics defines the Prometheus instrumentation for the seekbar
// daemon.
//
// All metrics are registered on the default registry through promauto and
// prefixed with "seekbar_". The daemon exposes them on the HTTP API's
// /metrics endpoint; other packages record by importing this package and
// touching the exported variables directly.
package metrics
