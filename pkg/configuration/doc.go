// Package configuration provides loading of fsprim configuration from YAML
// files, .env files, and the environment, and applies the result to the
// filesystem package defaults.
package configuration
