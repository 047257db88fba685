// Package document loads source documents: a front matter block delimited by
// two `---` lines holding `key: value` pairs, followed by body lines.
package document
