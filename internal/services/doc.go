// Package services defines shared utilities consumed by the remix pipeline and
// its external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs and pipeline step names for logging.
//   - Structured error markers plus the Wrap helper that classify failures as
//     configuration, ordering, IO, validation, or external tool errors.
//
// Use these helpers when wiring new pipeline steps so error handling and
// observability stay uniform across commands.
package services
