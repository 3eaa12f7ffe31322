package packet_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/core/domain/model/packet"
	"fulfillment/internal/core/domain/model/section"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 5, 2, 8, 30, 0, 0, time.UTC)

func spec(s kernel.Section, name string, qty float64) packet.LineSpec {
	return packet.LineSpec{
		InventoryItemID: kernel.NewUUID(),
		ItemName:        name,
		Section:         s,
		Required:        qty,
		Unit:            "m",
		RackLocation:    "A-1",
	}
}

func newPacket(t *testing.T, included, pending []kernel.Section, lines ...packet.LineSpec) *packet.Packet {
	t.Helper()
	p, err := packet.NewPacket(kernel.NewUUID(), kernel.NewUUID(), included, pending, lines, now)
	require.NoError(t, err)
	return p
}

func pickAll(t *testing.T, p *packet.Packet) {
	t.Helper()
	for _, l := range p.Lines() {
		if !l.IsPicked {
			require.NoError(t, p.Pick(l.ID, l.Required, now))
		}
	}
}

func completed(t *testing.T, p *packet.Packet, worker kernel.UUID) {
	t.Helper()
	require.NoError(t, p.Assign(worker, kernel.NewUUID(), now))
	require.NoError(t, p.Start(worker, now))
	pickAll(t, p)
	require.NoError(t, p.Complete(worker, now))
}

func TestNewPacket(t *testing.T) {
	t.Run("full packet", func(t *testing.T) {
		p := newPacket(t, []kernel.Section{kernel.Shirt, kernel.Dupatta}, nil,
			spec(kernel.Shirt, "lawn", 2.5), spec(kernel.Dupatta, "chiffon", 2.5))

		require.NoError(t, p.Validate())
		assert.Equal(t, packet.Unassigned, p.Status())
		assert.Equal(t, 1, p.Round())
		assert.False(t, p.IsPartial())
		assert.Equal(t, []kernel.Section{kernel.Dupatta, kernel.Shirt}, p.CurrentRoundSections())
		assert.Len(t, p.Lines(), 2)
		assert.Equal(t, orderitem.PacketActive, p.Phase())
	})

	t.Run("partial packet lists pending sections", func(t *testing.T) {
		p := newPacket(t, []kernel.Section{kernel.Shirt}, []kernel.Section{kernel.Dupatta}, spec(kernel.Shirt, "lawn", 1))

		assert.True(t, p.IsPartial())
		assert.Equal(t, []kernel.Section{kernel.Dupatta}, p.SectionsPending())
	})

	t.Run("rejects lines outside the round", func(t *testing.T) {
		_, err := packet.NewPacket(kernel.NewUUID(), kernel.NewUUID(), []kernel.Section{kernel.Shirt}, nil,
			[]packet.LineSpec{spec(kernel.Dupatta, "chiffon", 1)}, now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("requires sections", func(t *testing.T) {
		_, err := packet.NewPacket(kernel.NewUUID(), kernel.NewUUID(), nil, nil, nil, now)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestPacket_Lifecycle(t *testing.T) {
	worker, lead := kernel.NewUUID(), kernel.NewUUID()
	p := newPacket(t, []kernel.Section{kernel.Shirt, kernel.Dupatta}, nil,
		spec(kernel.Shirt, "lawn", 2), spec(kernel.Shirt, "buttons", 6),
		spec(kernel.Dupatta, "chiffon", 2.5), spec(kernel.Dupatta, "lace", 3))

	_, err := p.Status().Next(packet.EventStart)
	require.ErrorIs(t, err, errs.ErrStateConflict)

	require.NoError(t, p.Assign(worker, lead, now))
	require.ErrorIs(t, p.Start(kernel.NewUUID(), now), errs.ErrStateConflict)
	require.NoError(t, p.Start(worker, now))

	lines := p.Lines()
	require.ErrorIs(t, p.Pick(lines[0].ID, 0, now), errs.ErrValueIsInvalid)
	require.ErrorIs(t, p.Pick(kernel.NewUUID(), 1, now), errs.ErrObjectNotFound)
	require.NoError(t, p.Pick(lines[0].ID, 2, now))
	assert.Equal(t, 1, p.PickedCount())

	err = p.Complete(worker, now)
	var incomplete *errs.IncompletePreconditionError
	require.ErrorAs(t, err, &incomplete)
	assert.Len(t, incomplete.Items, 3)
	assert.Equal(t, packet.InProgress, p.Status())

	pickAll(t, p)
	require.NoError(t, p.Complete(worker, now))
	assert.Equal(t, packet.Completed, p.Status())
	assert.Equal(t, orderitem.PacketCompleted, p.Phase())

	require.NoError(t, p.Approve(lead, now))
	assert.Equal(t, packet.Approved, p.Status())
	assert.Equal(t, orderitem.PacketApproved, p.Phase())
	require.ErrorIs(t, p.Approve(lead, now), errs.ErrStateConflict)
}

func TestPacket_Reject(t *testing.T) {
	t.Run("requires code and reason and a completed packet", func(t *testing.T) {
		p := newPacket(t, []kernel.Section{kernel.Shirt}, nil, spec(kernel.Shirt, "lawn", 1))

		require.ErrorIs(t, p.ValidateReject("", "bad"), errs.ErrValueIsRequired)
		require.ErrorIs(t, p.ValidateReject("WRONG_ITEM", "bad"), errs.ErrStateConflict)
	})

	t.Run("round one resets the whole packet and returns to the assignee", func(t *testing.T) {
		worker := kernel.NewUUID()
		p := newPacket(t, []kernel.Section{kernel.Shirt, kernel.Dupatta}, nil,
			spec(kernel.Shirt, "lawn", 2), spec(kernel.Dupatta, "chiffon", 2))
		completed(t, p, worker)

		scope := p.RejectionScope()
		require.Equal(t, []kernel.Section{kernel.Dupatta, kernel.Shirt}, scope)
		require.NoError(t, p.Reject(kernel.NewUUID(), "WRONG_ITEM", "wrong fabric", scope, now))

		assert.Equal(t, packet.Assigned, p.Status())
		assert.Equal(t, worker, *p.Assignee())
		assert.Equal(t, 2, p.Round())
		assert.Zero(t, p.PickedCount())
		require.Len(t, p.Rejections(), 1)
		assert.Equal(t, 1, p.Rejections()[0].Round)
	})

	t.Run("later round of a partial packet only resets that round", func(t *testing.T) {
		worker := kernel.NewUUID()
		p := newPacket(t, []kernel.Section{kernel.Shirt}, []kernel.Section{kernel.Dupatta}, spec(kernel.Shirt, "lawn", 2))
		completed(t, p, worker)
		require.NoError(t, p.Approve(kernel.NewUUID(), now))

		require.NoError(t, p.OpenNextRound([]kernel.Section{kernel.Dupatta},
			[]packet.LineSpec{spec(kernel.Dupatta, "chiffon", 2.5), spec(kernel.Dupatta, "lace", 3)}, now))
		assert.Equal(t, packet.Unassigned, p.Status())
		assert.Equal(t, 2, p.Round())
		assert.Empty(t, p.SectionsPending())
		completed(t, p, worker)

		scope := p.RejectionScope()
		require.Equal(t, []kernel.Section{kernel.Dupatta}, scope)
		require.NoError(t, p.Reject(kernel.NewUUID(), "WRONG_ITEM", "wrong fabric", scope, now))

		for _, l := range p.Lines() {
			if l.Section == kernel.Shirt {
				assert.True(t, l.IsPicked, "shirt lines keep their picks")
			} else {
				assert.False(t, l.IsPicked)
			}
		}
		assert.Equal(t, []kernel.Section{kernel.Dupatta}, p.CurrentRoundSections())
		assert.Equal(t, packet.Assigned, p.Status())
	})

	t.Run("nothing to reset is a conflict", func(t *testing.T) {
		p := newPacket(t, []kernel.Section{kernel.Shirt}, nil, spec(kernel.Shirt, "lawn", 2))
		completed(t, p, kernel.NewUUID())

		err := p.Reject(kernel.NewUUID(), "WRONG_ITEM", "wrong fabric", nil, now)

		require.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Equal(t, packet.Completed, p.Status())
	})
}

func TestPacket_SpecificApproval(t *testing.T) {
	worker := kernel.NewUUID()
	p := newPacket(t, []kernel.Section{kernel.Shirt, kernel.Dupatta}, nil,
		spec(kernel.Shirt, "lawn", 2), spec(kernel.Dupatta, "chiffon", 2))

	require.ErrorIs(t, p.ValidateSpecificApproval([]kernel.Section{kernel.Shirt}), errs.ErrStateConflict)
	require.NoError(t, p.Assign(worker, kernel.NewUUID(), now))
	require.ErrorIs(t, p.ValidateSpecificApproval([]kernel.Section{kernel.Kurta}), errs.ErrValueIsInvalid)
	require.NoError(t, p.ValidateSpecificApproval([]kernel.Section{kernel.Shirt}))

	require.NoError(t, p.Start(worker, now))
	pickAll(t, p)
	assert.True(t, p.IsSectionPicked(kernel.Shirt))
	require.NoError(t, p.Complete(worker, now))

	approved, err := p.SettleApproval(map[kernel.Section]section.Status{
		kernel.Shirt:   section.ReadyForDyeing,
		kernel.Dupatta: section.PacketVerification,
	}, worker, now)
	require.NoError(t, err)
	assert.False(t, approved)

	approved, err = p.SettleApproval(map[kernel.Section]section.Status{
		kernel.Shirt:   section.ReadyForDyeing,
		kernel.Dupatta: section.ReadyForDyeing,
	}, worker, now)
	require.NoError(t, err)
	assert.True(t, approved)
	assert.Equal(t, packet.Approved, p.Status())
}

func TestPacket_OpenReworkRound(t *testing.T) {
	t.Run("approved packet opens a new round for the section", func(t *testing.T) {
		worker := kernel.NewUUID()
		p := newPacket(t, []kernel.Section{kernel.Shirt, kernel.Dupatta}, nil,
			spec(kernel.Shirt, "lawn", 2), spec(kernel.Dupatta, "chiffon", 2))
		completed(t, p, worker)
		require.NoError(t, p.Approve(kernel.NewUUID(), now))

		require.NoError(t, p.OpenReworkRound(kernel.Shirt, now))

		assert.Equal(t, packet.Assigned, p.Status())
		assert.Equal(t, worker, *p.Assignee())
		assert.Equal(t, 2, p.Round())
		assert.Equal(t, []kernel.Section{kernel.Shirt}, p.CurrentRoundSections())
		assert.False(t, p.IsSectionPicked(kernel.Shirt))
		assert.True(t, p.IsSectionPicked(kernel.Dupatta))
	})

	t.Run("active packet adds the section to the current round", func(t *testing.T) {
		worker := kernel.NewUUID()
		p := newPacket(t, []kernel.Section{kernel.Shirt}, []kernel.Section{kernel.Dupatta}, spec(kernel.Shirt, "lawn", 2))
		completed(t, p, worker)
		require.NoError(t, p.Approve(kernel.NewUUID(), now))
		require.NoError(t, p.OpenNextRound([]kernel.Section{kernel.Dupatta}, nil, now))
		require.NoError(t, p.Assign(worker, kernel.NewUUID(), now))

		require.NoError(t, p.OpenReworkRound(kernel.Shirt, now))

		assert.Equal(t, packet.Assigned, p.Status())
		assert.Equal(t, 2, p.Round())
		assert.Equal(t, []kernel.Section{kernel.Dupatta, kernel.Shirt}, p.CurrentRoundSections())
	})
}

func TestLinesFor(t *testing.T) {
	fabric := kernel.NewUUID()
	reqs := []orderitem.MaterialRequirement{{
		InventoryItemID: fabric,
		ItemName:        "lawn",
		Unit:            "m",
		Required:        5,
		Shares:          map[kernel.Section]float64{kernel.Shirt: 3, kernel.Trouser: 2},
	}}

	lines := packet.LinesFor(reqs, []kernel.Section{kernel.Trouser, kernel.Shirt})

	require.Len(t, lines, 2)
	assert.Equal(t, kernel.Shirt, lines[0].Section)
	assert.InDelta(t, 3.0, lines[0].Required, 1e-9)
	assert.Equal(t, kernel.Trouser, lines[1].Section)
	assert.Empty(t, packet.LinesFor(reqs, []kernel.Section{kernel.Dupatta}))
}

func TestRestorePacket(t *testing.T) {
	p := newPacket(t, []kernel.Section{kernel.Shirt}, nil, spec(kernel.Shirt, "lawn", 2))
	completed(t, p, kernel.NewUUID())

	restored, err := packet.RestorePacket(p.State())

	require.NoError(t, err)
	assert.Equal(t, p.State(), restored.State())
}
