package common

// AuthorizationHeaderName is the HTTP header carrying the access token on
// protected requests, in the form "Bearer <token>".
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the authorization scheme expected in front of the token.
const BearerScheme = "Bearer"
