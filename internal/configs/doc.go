// Package configs manages ssh-keys configuration and local data paths.
//
// Configuration is stored in TOML at $XDG_CONFIG_HOME/ssh-keys/config.toml
// (os.UserConfigDir on other platforms):
//
//	[aws]
//	profile = "default"
//	region  = "us-east-1"
//
//	[secret]
//	id = "ssh-keys"
//
//	[put]
//	exclude = ["known_hosts*"]
//
//	[sso]
//	start_url = "https://example.awsapps.com/start"
//	region    = "us-east-1"
//
// A missing file is not an error; Load returns Defaults(). Values set in the
// file override the defaults field by field, and command-line flags override
// both. Unknown keys are rejected. Save writes the file atomically with mode
// 0600.
//
// # Settings
//
// Settings holds the resolved directories. The audit log lives under
// DataPath ($XDG_DATA_HOME/ssh-keys, default ~/.local/share/ssh-keys).
package configs
