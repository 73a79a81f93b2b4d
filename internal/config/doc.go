// Package config provides configuration loading and centralized path
// resolution for the sentiment report pipeline.
//
// Configuration comes from three layers, later layers winning:
//
//  1. struct tag defaults
//  2. an optional sentipulse.yaml next to the executable
//  3. SENTIPULSE_-prefixed environment variables
//
// All file system paths are resolved relative to the executable directory
// through the Paths type, never the current working directory.
package config
