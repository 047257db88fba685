// Package template implements the line oriented template language used by
// press documents.
//
// Directives occupy a whole line:
//
//	@if name / @if !name   render the enclosed lines when name is (not) truthy
//	@for item in list      render the enclosed lines once per element of list
//	@end                   close the innermost @if or @for
//	@include name          splice in the assembled output of layout name
//	@cmd shell text        splice in the stdout of a shell command
//
// Any other line is text; `{{ name }}` placeholders in it are replaced by the
// HTML-escaped value of name. A list is spelled in front matter as
// list_1, list_2, ... and ends at the first missing index.
//
// `@cmd` runs arbitrary shell text with the privileges of the caller. Templates
// are author controlled input, so this is a deliberate capability.
package template
