// Package catalog holds the built-in image templates.
//
// Templates come in four families: generic cards, blog post cards,
// marketplace listings and developer pages. Register adds them all to a
// templates.Registry; Default returns a registry that already holds them.
//
// Category and DisplayName derive picker metadata from template names, and
// Describe assembles the full listing served to template pickers.
package catalog
