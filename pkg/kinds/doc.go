// Package kinds groups the built-in board kinds. Each subpackage exposes one
// or more plugins and owns the encoding of its boards' content.
//
// Use [github.com/matzehuels/auteur/pkg/kinds/builtin.Register] to install
// all of them into a registry.
package kinds
