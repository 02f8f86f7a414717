package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionAdvance_ForwardOnly(t *testing.T) {
	session := &Session{Phase: PhasePreDialysis}

	require.True(t, session.Advance(PhaseIntraDialysis))
	assert.Equal(t, PhaseIntraDialysis, session.Phase)
	assert.True(t, session.IsPreDialysisLocked)
	assert.False(t, session.IsIntraDialysisLocked)

	require.True(t, session.Advance(PhasePostDialysis))
	assert.True(t, session.IsIntraDialysisLocked)

	require.True(t, session.Advance(PhaseDischarged))
	assert.True(t, session.IsDischarged)
	assert.False(t, session.IsActive())
}

func TestSessionAdvance_RejectsSkipsAndRegressions(t *testing.T) {
	session := &Session{Phase: PhasePreDialysis}

	assert.False(t, session.Advance(PhasePostDialysis))
	assert.False(t, session.Advance(PhaseDischarged))
	assert.False(t, session.Advance(PhasePreDialysis))
	assert.Equal(t, PhasePreDialysis, session.Phase)

	session.Phase = PhaseIntraDialysis
	assert.False(t, session.Advance(PhasePreDialysis))
	assert.False(t, session.Advance(PhaseDischarged))

	session.Phase = PhaseDischarged
	assert.False(t, session.Advance(PhasePreDialysis))
	assert.False(t, session.Advance(PhaseIntraDialysis))
	assert.False(t, session.Advance(PhasePostDialysis))
}

func TestSessionPhaseIsValid(t *testing.T) {
	assert.True(t, PhasePreDialysis.IsValid())
	assert.True(t, PhaseDischarged.IsValid())
	assert.False(t, SessionPhase("waiting").IsValid())
}

func TestMissedReasonIsValid(t *testing.T) {
	assert.True(t, MissedReasonSick.IsValid())
	assert.True(t, MissedReasonOther.IsValid())
	assert.False(t, MissedReason("overslept").IsValid())
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2026, 3, 2, 14, 35, 12, 99, time.FixedZone("X", 7*3600))
	day := DateOnly(ts)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), day)
}
