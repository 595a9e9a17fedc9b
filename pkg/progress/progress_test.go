package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseValues(t *testing.T) {
	assert.Equal(t, 0.1, PhaseInit.Value())
	assert.Equal(t, 0.2, PhaseQueryGen.Value())
	assert.Equal(t, 0.4, PhaseSearch.Value())
	assert.Equal(t, 0.6, PhaseSearchDB.Value())
	assert.Equal(t, 0.8, PhaseSearchInternet.Value())
	assert.Equal(t, 1.0, PhaseComplete.Value())
	assert.Equal(t, 1.0, PhaseError.Value())
	assert.Equal(t, -1.0, PhaseRecommendation.Value())
}

func TestTracker(t *testing.T) {
	t.Run("full pipeline is monotonic", func(t *testing.T) {
		var events []Event
		tr := NewTracker(func(e Event) { events = append(events, e) })

		tr.Emit(PhaseInit, "starting")
		tr.Emit(PhaseQueryGen, "expanding queries")
		tr.Emit(PhaseSearch, "searching")
		tr.Emit(PhaseSearchDB, "alumni search done")
		tr.Emit(PhaseSearchInternet, "web search done")
		tr.EmitAt(PhaseRecommendation, 0.9, "synthesizing", nil)
		tr.Emit(PhaseComplete, "done")

		require.Len(t, events, 7)
		last := 0.0
		for _, e := range events {
			assert.GreaterOrEqual(t, e.Progress, last)
			last = e.Progress
		}
		assert.Equal(t, 1.0, events[len(events)-1].Progress)
	})

	t.Run("nothing after terminal phase", func(t *testing.T) {
		var events []Event
		tr := NewTracker(func(e Event) { events = append(events, e) })

		tr.Emit(PhaseError, "boom")
		tr.Emit(PhaseComplete, "too late")

		require.Len(t, events, 1)
		assert.Equal(t, PhaseError, events[0].Phase)
	})

	t.Run("regressing value is clamped up", func(t *testing.T) {
		var events []Event
		tr := NewTracker(func(e Event) { events = append(events, e) })

		tr.Emit(PhaseSearchInternet, "")
		tr.EmitAt(PhaseRecommendation, 0.5, "", nil)

		require.Len(t, events, 2)
		assert.Equal(t, 0.8, events[1].Progress)
	})

	t.Run("nil emitter is safe", func(t *testing.T) {
		tr := NewTracker(nil)
		tr.Emit(PhaseInit, "")
	})
}
