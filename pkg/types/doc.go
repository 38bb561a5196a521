// Package types defines the values shared between dottler's components:
// TrackedPath and PathSet produced by normalization, and the Report that
// every command returns for rendering.
package types
