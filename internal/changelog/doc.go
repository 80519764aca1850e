// Package changelog turns a repository's tag history into a changelog
// document. It owns the tag-ordering and range-selection logic: building an
// ordered tag index from raw decoration records, deciding which commit
// ranges belong to which output section given the user's bounds, and
// rendering each section as it is produced.
//
// Repository access is abstracted behind the CommitFetcher and RefResolver
// interfaces so the selection logic can be exercised without a repository.
package changelog
