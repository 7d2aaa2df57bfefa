// Package config loads the ogx server configuration.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// OGX_* environment variables. Admin credentials may be given as secret
// references and are resolved last:
//
//	admin:
//	  api_key: secretref:env:OGX_ADMIN_KEY
//	  jwt_secret: secretref:file:/run/secrets/ogx_jwt
//
// The loaded Config is validated before it is returned.
package config
