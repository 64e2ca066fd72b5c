// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional YAML file. It provides typed
// settings for the server, the LLM provider, the generation pipeline and the
// optional deck database.
package config
