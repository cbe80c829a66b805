// Package file provides file-based configuration adapters.
//
// Adapters:
//   - Config: typed TOML application configuration
//   - PromptStore: user-editable LLM prompt templates
package file
