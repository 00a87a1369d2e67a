// File: utils/constants.go
package utils

import "time"

// AdminSessionPrefix is the prefix of cached admin identities in Redis.
const AdminSessionPrefix = "adminSession:"

// AdminSessionTTL bounds how long a cached identity is trusted without a database read.
const AdminSessionTTL = 5 * time.Minute

// RevokedTokenPrefix is the prefix of logged-out token hashes in Redis.
const RevokedTokenPrefix = "revokedToken:"
