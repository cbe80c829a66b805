// Package sqlite implements the document registry and chat history
// stores on a single embedded SQLite database. Schema changes are
// applied through embedded versioned migrations at startup.
package sqlite
