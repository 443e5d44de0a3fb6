// Profiling:
// go build ./profile/iterate
// go tool pprof -http=":8000" -nodefraction=0.001 ./iterate mem.pprof

package main

import (
	"github.com/TheBitDrifter/registry"
	"github.com/pkg/profile"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

func main() {
	rounds := 50
	iters := 1000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	c1 := registry.FactoryNewComponent[comp1]()
	c2 := registry.FactoryNewComponent[comp2]()

	for range rounds {
		reg, err := registry.Factory.NewRegistry(registry.WithComponents(c1, c2))
		if err != nil {
			panic(err)
		}

		for range iters {
			created, err := reg.CreateMany(numEntities, c1.With(comp1{V: 1}), c2.With(comp2{V: 2}))
			if err != nil {
				panic(err)
			}

			cursor, err := reg.NewCursor(c1, c2)
			if err != nil {
				panic(err)
			}
			for cursor.Next() {
				a := c1.GetFromCursor(cursor)
				b := c2.GetFromCursor(cursor)
				a.V += b.V
				a.W += b.W
			}

			for i := range created {
				if err := reg.Destroy(&created[i]); err != nil {
					panic(err)
				}
			}
		}
	}
}
