//go:build !race

package auth

// passwordHashCost matches the work factor the rest of the platform was
// provisioned for. Raising it invalidates no stored hashes (the cost is
// embedded per hash) but slows every login.
func passwordHashCost() int {
	return 12
}
