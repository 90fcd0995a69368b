package hungerindex

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	cachemem "park-safety-service/internal/adapters/cache/memory"
	"park-safety-service/internal/platform/logger"
)

// El guard de ordenación promete que el resultado final no depende del
// orden de llegada de los eventos de ubicación. Acá se verifica contra la
// aplicación ordenada por tiempo, con secuencias arbitrarias.
func TestPlacementOrderIndependence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	type placement struct {
		loc string
		at  time.Time
	}

	applyAll := func(ctx context.Context, ps []placement) *Store {
		s := NewStore(cachemem.NewKV(), logger.Nop{})
		for _, p := range ps {
			if err := s.Place(ctx, 1, p.loc, p.at); err != nil {
				t.Fatalf("place: %v", err)
			}
		}
		return s
	}

	properties.Property("shuffled placements converge to the time-ordered result", prop.ForAll(
		func(offsets []int64) bool {
			// el guard es estricto: con tiempos duplicados el orden sí
			// decide, así que se deduplican los offsets
			seen := make(map[int64]bool)
			arrival := make([]placement, 0, len(offsets))
			for _, o := range offsets {
				if seen[o] {
					continue
				}
				seen[o] = true
				arrival = append(arrival, placement{
					loc: fmt.Sprintf("L%d", o%5),
					at:  start.Add(time.Duration(o) * time.Second),
				})
			}
			if len(arrival) == 0 {
				return true
			}

			ordered := make([]placement, len(arrival))
			copy(ordered, arrival)
			sort.Slice(ordered, func(i, j int) bool { return ordered[i].at.Before(ordered[j].at) })

			ctx := context.Background()
			got := applyAll(ctx, arrival)
			want := applyAll(ctx, ordered)

			gotRec, _, _ := got.GetRecord(ctx, 1)
			wantRec, _, _ := want.GetRecord(ctx, 1)
			if gotRec.Location == nil || wantRec.Location == nil {
				return false
			}
			if *gotRec.Location != *wantRec.Location {
				return false
			}

			gotIdx, _ := got.HungryAt(ctx, *gotRec.Location)
			wantIdx, _ := want.HungryAt(ctx, *wantRec.Location)
			if len(gotIdx) != len(wantIdx) {
				return false
			}
			for id, ts := range wantIdx {
				if gotIdx[id] != ts {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int64Range(0, 240)),
	))

	properties.TestingRun(t)
}
