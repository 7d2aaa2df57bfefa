// Package auth guards the administrative endpoints of the image service.
//
// Image routes are public. Cache inspection and clearing are not: they
// require a caller that presents either an API key (X-API-Key) or a signed
// JWT bearer token. Authenticators check one kind of credential each; a
// CompositeAuthenticator tries them in order. Middleware applies an
// authenticator to an http.Handler and can additionally demand a role.
package auth
