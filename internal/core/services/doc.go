// Package services implements the driving ports on top of the driven
// ports: search and fetch over charts, indicators and posts, the
// read-only SQL service, the constrained deep-research surface, and
// the shared region resolver.
//
// Services hold no per-request state. The only process-wide state is
// the Regions mapping, which is built once and read-only thereafter.
// Within one tool invocation steps are strictly sequential: search,
// then normalize, then URL-build.
package services
