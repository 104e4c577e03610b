// Package sitemirror provides a scoped website mirroring tool.
// Given a starting URL it downloads that page and every page or asset
// reachable from it under the same host and path prefix, preserving the
// relative directory structure on disk so the result can be reused as a
// static template.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, sqlite/).
package sitemirror
