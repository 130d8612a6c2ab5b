// Package config handles partnerctl's configuration and local state.
//
// # Config File
//
// Configuration is read from config.toml in the user config dir:
//
//	api_base_url = "https://api.refero.dev"
//	token = "ref_xxx"
//	browser_command = "xdg-open"
//
// Environment variables PARTNERCTL_API_URL and PARTNERCTL_TOKEN
// override the file.
//
// # Drafts
//
// Unsubmitted applications are saved as JSON drafts under the state
// dir, one file per program slug, and restored when the form reopens.
//
// # Slug Validation
//
// ValidateProgramSlug guards every path constructed from a program
// slug; draft files additionally go through filepath-securejoin.
package config
