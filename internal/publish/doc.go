// Package publish writes every non-draft post to the output directory and
// creates new draft posts.
package publish
