// Package markdown loads reference documents from the filesystem and renders
// them to HTML. It backs the corpus splitter, chapter builder, validator, and
// the preview command.
package markdown
