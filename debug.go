//go:build energyaware_debug

package energyaware

const debugging = true

func assert(cond bool, message string) {
	if !cond {
		panic(message)
	}
}
