// Package config loads dottler's configuration.
//
// Sources are layered with koanf, later ones winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, TOML or YAML by extension
//  3. DOTTLER_* environment variables, "__" separating section and key
//     (DOTTLER_SYNC__PUSH=true sets sync.push)
//
// Lists replace rather than merge. The result is decoded into Config with
// mapstructure, so "a,b" strings from the environment become slices.
package config
