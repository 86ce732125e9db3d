//go:build !race

package favorites

func passwordHashCost() int {
	return 14
}
