// Package cli provides command-line interface handling for the
// spellingwords application.
package cli
