// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables (FMP_ prefix)
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetConfig] for library consumers and
// [GetConfigWithFlags] for the fmp binary.
package config
