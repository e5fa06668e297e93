package selection

import (
	"fmt"
	"math/rand"
	"testing"

	"golang.org/x/exp/slices"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceSet is a deliberately naive ordered set used to check the models against.
type referenceSet struct {
	items  []int
	single bool
}

func (r *referenceSet) apply(op string, item int) bool {
	before := slices.Clone(r.items)
	switch op {
	case "select":
		if !slices.Contains(r.items, item) {
			if r.single {
				r.items = nil
			}
			r.items = append(r.items, item)
		}
	case "deselect":
		if i := slices.Index(r.items, item); i >= 0 {
			r.items = slices.Delete(r.items, i, i+1)
		}
	case "deselectAll":
		r.items = nil
	}
	return !slices.Equal(before, r.items)
}

func TestModelsMatchReferenceModel(t *testing.T) {
	for _, single := range []bool{true, false} {
		t.Run(fmt.Sprintf("single=%t", single), func(t *testing.T) {
			rnd := rand.New(rand.NewSource(1)) //nolint:gosec
			for run := 0; run < 50; run++ {
				var model Model[int]
				if single {
					model = NewSingleModel[int]()
				} else {
					model = NewMultiModel[int]()
				}
				events := recordEvents(model)
				ref := &referenceSet{single: single}
				expectedEvents := 0

				for step := 0; step < 30; step++ {
					item := rnd.Intn(5)
					var op string
					switch rnd.Intn(7) {
					case 0:
						op = "deselectAll"
						require.NoError(t, model.DeselectAll())
					case 1, 2, 3:
						op = "select"
						require.NoError(t, model.Select(item))
					default:
						op = "deselect"
						require.NoError(t, model.Deselect(item))
					}
					if ref.apply(op, item) {
						expectedEvents++
					}
					require.Equal(t, append([]int{}, ref.items...), model.SelectedItems(),
						"after %s(%d) in run %d", op, item, run)
				}
				assert.Len(t, *events, expectedEvents)
			}
		})
	}
}
