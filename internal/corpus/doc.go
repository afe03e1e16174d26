// Package corpus implements the reference corpus pipeline: scanning a
// one-page Markdown reference for top-level sections, splitting it into
// per-section files, bundling sections into themed chapter files, and
// recording every produced artifact in a build manifest.
package corpus
