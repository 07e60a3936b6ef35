// Package blog loads blog posts written as Markdown with YAML front matter.
//
// Built-in posts are embedded in the binary. An optional directory of .md
// files is merged over them, a file with the same slug replacing the built-in
// post. Watcher reloads the directory when its files change.
//
// A post file looks like:
//
//	---
//	title: Understanding Master Numbers
//	author: Numen
//	published_at: 2025-03-01
//	tags: [basics, master-numbers]
//	summary: Why 11, 22 and 33 are never reduced.
//	---
//	Markdown body...
//
// The slug defaults to the file name without its extension.
package blog
