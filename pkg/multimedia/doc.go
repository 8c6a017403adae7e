// Package multimedia provides a reusable data-access layer for a
// video-annotation application: categories, user-owned videos, and
// time-stamped annotations, backed by a pluggable repository.
//
// It exposes a single Service interface that groups every multimedia
// operation: idempotent category creation, video CRUD with owner scoping,
// and append-only annotations with a deterministic playback ordering.
// Repository implementations (memory, Postgres) are provided under
// subpackages.
//
// The service owns no state. Every call is synchronous, takes a
// context.Context, and delegates persistence to the configured Repository.
// Input validation happens before storage is touched; a failed validation
// is returned as ValidationErrors and never reaches the repository.
package multimedia
