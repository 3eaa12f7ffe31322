package section_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/section"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_IsBeyondPacketVerification(t *testing.T) {
	for s := section.Pending; s <= section.PacketVerification; s++ {
		assert.False(t, s.IsBeyondPacketVerification(), s.String())
	}
	for s := section.ReadyForDyeing; s <= section.Completed; s++ {
		assert.True(t, s.IsBeyondPacketVerification(), s.String())
	}
	assert.False(t, section.Unknown.IsBeyondPacketVerification())
	assert.False(t, section.Status(99).IsBeyondPacketVerification())
}

func TestStatus_StageAndEarly(t *testing.T) {
	assert.Equal(t, section.StagePacket, section.CreatePacket.Stage())
	assert.Equal(t, section.StageDyeing, section.DyeingCompleted.Stage())
	assert.Equal(t, section.StageProduction, section.ProductionCompleted.Stage())
	assert.Equal(t, section.StageApproval, section.ReadyForClientApproval.Stage())
	assert.Equal(t, section.StageUnknown, section.Unknown.Stage())

	assert.True(t, section.AwaitingMaterial.IsEarly())
	assert.True(t, section.PacketVerification.IsEarly())
	assert.False(t, section.ReadyForDyeing.IsEarly())
}

func TestParseStatus(t *testing.T) {
	for s := section.Pending; s <= section.Completed; s++ {
		parsed, err := section.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := section.ParseStatus("UNKNOWN")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Next(t *testing.T) {
	tests := []struct {
		from  section.Status
		event section.Event
		want  section.Status
	}{
		{section.Pending, section.EventMaterialShort, section.AwaitingMaterial},
		{section.AwaitingMaterial, section.EventMaterialSufficient, section.CreatePacket},
		{section.CreatePacket, section.EventPacketCompleted, section.PacketVerification},
		{section.PacketVerification, section.EventApprovedForDyeing, section.ReadyForDyeing},
		{section.PacketVerification, section.EventApprovedAsReadyStock, section.QAPending},
		{section.PacketVerification, section.EventPacketRejected, section.CreatePacket},
		{section.DyeingInProgress, section.EventDyeingRejected, section.CreatePacket},
		{section.DyeingCompleted, section.EventTasksCreated, section.ReadyForProduction},
		{section.InProduction, section.EventProductionCompleted, section.ProductionCompleted},
		{section.ProductionCompleted, section.EventSentToQA, section.QAPending},
		{section.AwaitingClientApproval, section.EventClientApproved, section.ClientApproved},
		{section.ClientApproved, section.EventOrderCompleted, section.Completed},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"/"+tt.event.String(), func(t *testing.T) {
			got, err := tt.from.Next(tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_Next_ConflictReportsRequiredStatuses(t *testing.T) {
	_, err := section.DyeingCompleted.Next(section.EventDyeingRejected)

	require.ErrorIs(t, err, errs.ErrStateConflict)
	var conflict *errs.StateConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "DYEING_COMPLETED", conflict.Current)
	assert.Equal(t, []string{"READY_FOR_DYEING", "DYEING_ACCEPTED", "DYEING_IN_PROGRESS"}, conflict.Required)
}

func TestStatus_PacketEventsNeverRegressProtectedStatuses(t *testing.T) {
	for s := section.ReadyForDyeing; s <= section.Completed; s++ {
		for _, e := range []section.Event{
			section.EventPacketRejected,
			section.EventPacketCompleted,
			section.EventApprovedForDyeing,
			section.EventApprovedForProduction,
			section.EventApprovedAsReadyStock,
		} {
			_, err := s.Next(e)
			require.Error(t, err, "%s/%s", s, e)
		}
	}
}

func TestRecord_Apply(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	r := section.NewRecord(t0)
	next, err := r.Apply(section.EventMaterialSufficient, t1)

	require.NoError(t, err)
	assert.Equal(t, section.CreatePacket, next.Status)
	assert.Equal(t, t1, next.UpdatedAt)
	assert.Equal(t, t1, next.Transitions[section.CreatePacket])
	assert.Equal(t, section.Pending, r.Status, "original record is untouched")
	assert.NotContains(t, r.Transitions, section.CreatePacket)

	_, err = r.Apply(section.EventClientApproved, t1)
	require.ErrorIs(t, err, errs.ErrStateConflict)
}
