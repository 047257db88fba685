// Package markdown converts rendered document bodies into HTML, either in
// process with goldmark or by piping through an external filter command.
package markdown
