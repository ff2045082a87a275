// Package auth implements a username/password authentication backend with
// JWT session tokens.
//
// Core workflow:
//   - Signup validates the registration payload, checks email uniqueness
//     inside a single transaction, hashes the password with bcrypt, and
//     persists the user through the Bun-backed Users repository.
//   - Signin verifies credentials against the stored hash and issues an
//     HS256-signed JWT carrying the user's id, email, and name. Unknown
//     emails and wrong passwords produce the same error so callers cannot
//     probe which emails are registered.
//   - Profile data is read straight from validated token claims, so no store
//     round trip happens on profile requests.
//
// The HTTP surface lives in the AuthController (Fiber handlers) with the
// bearer-token middleware under middleware/jwtware. Store failures are
// classified separately from business-rule failures so connectivity problems
// surface as 500s while bad credentials stay 401s.
package auth
