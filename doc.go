// Package favorites implements a small account and favorite-albums backend:
// password registration, bearer-token login, and per-user favorite records.
//
// Authentication core:
//   - Passwords are hashed with bcrypt (HashPassword / ComparePasswordAndHash).
//     Verification is constant time and a mismatch is never distinguishable
//     from an unknown account by callers of UserProvider.VerifyIdentity.
//   - TokenService issues and validates stateless HS256 JWTs. The token is the
//     entire session state; there is no server-side session record and no
//     revocation path before expiry.
//   - Guard resolves an incoming bearer token into the backing User record.
//     Every decode, expiry, or lookup failure collapses into the single
//     ErrUnauthenticated kind so a caller learns nothing about why a token
//     was rejected.
//
// Persistence uses Bun repositories (Users, Favorites) behind a
// RepositoryManager; the HTTP surface lives in http_controller.go and is
// served by Fiber, with the bearer guard applied through middleware/jwtware.
package favorites
