/*
Package denylist tracks revoked token IDs so the Authorize middleware can
reject a token before its natural expiry.

Two backends are provided: [Map] keeps revocations in process memory and
suits single-instance deployments, while [Redis] shares them across a
fleet through a Redis backend. Both satisfy [Denylist].
*/
package denylist
