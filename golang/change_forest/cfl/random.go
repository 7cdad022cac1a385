package cfl

import "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

//NewRand returns a generator seeded deterministically from seed, so that
//permutation tests with equal Control.Seed draw equal permutations.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(mix(seed), mix(seed+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
