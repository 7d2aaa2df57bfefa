// Package secret resolves credentials referenced from configuration.
//
// Configuration values may name a secret instead of holding it:
//
//	admin_key: secretref:env:OGX_ADMIN_KEY
//	jwt_secret: secretref:file:/run/secrets/jwt_secret
//	authorization: Bearer secretref:file:upstream_token
//
// A Resolver expands ${VAR} references strictly, then replaces every
// "secretref:<provider>:<ref>" with the value the named Provider returns.
// EnvProvider reads the process environment and FileProvider reads files
// from a directory such as a mounted secrets volume.
package secret
