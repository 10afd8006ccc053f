// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity handles client identifiers.

A client identifier is generated by the map client (or by
GenerateClientID) and sent with each vote. It only rate-limits voting; it
is not an authenticated user and can be spoofed.

# Client IDs

	id, err := identity.GenerateClientID()  // 32 URL-safe chars

# Hashing

Raw client ids and IP addresses never reach the logs:

	slog.Info("vote recorded", "client", identity.HashClientID(id, salt))
	slog.Info("vote recorded", "ip_hash", identity.HashIP(ip, salt))

Both return the first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package identity
