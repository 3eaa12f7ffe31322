package commands_test

import (
	"slices"
	"sync"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/core/domain/model/section"
	"fulfillment/internal/core/domain/model/timeline"
)

// Handlers racing on sibling sections of one item both land: neither
// overwrites the section the other one moved.
func (s *WorkflowSuite) TestConcurrentSiblingSectionsKeepBothUpdates() {
	product := kernel.NewUUID()
	stock := s.catalogFor(product, []material{
		{name: "Organza", piece: kernel.Shirt, unit: "m", perPc: 2, stock: 10},
		{name: "Chiffon", piece: kernel.Dupatta, unit: "m", perPc: 2.5, stock: 10},
	})
	orderID, itemID := s.createOrder(orderitem.Spec{
		ProductID:      product,
		Size:           "M",
		Quantity:       1,
		BasePieces:     []kernel.Section{kernel.Shirt, kernel.Dupatta},
		RequiresDyeing: true,
	})

	s.runCheck(itemID)
	s.createPacket(itemID)
	s.pickAndComplete(itemID)
	s.approvePacket(itemID, false)
	s.dyeing(itemID, commands.DyeingAccept, kernel.Shirt, kernel.Dupatta)
	s.dyeing(itemID, commands.DyeingStart, kernel.Shirt, kernel.Dupatta)

	before := s.status(itemID)
	s.Equal(map[string]string{
		"dupatta": section.DyeingInProgress.String(),
		"shirt":   section.DyeingInProgress.String(),
	}, sectionStatuses(before))

	reject, err := commands.NewRejectDyeingCommand(itemID, []kernel.Section{kernel.Shirt}, "COLOUR_BLEED",
		"shade does not match the swatch", s.dyer)
	s.Require().NoError(err)
	complete, err := commands.NewDyeingCommand(itemID, commands.DyeingComplete, []kernel.Section{kernel.Dupatta}, s.dyer)
	s.Require().NoError(err)

	rh := commands.NewRejectDyeingCommandHandler(s.uows)
	dh := commands.NewDyeingCommandHandler(s.orders)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		results <- rh.Handle(s.T().Context(), reject)
	}()
	go func() {
		defer wg.Done()
		results <- dh.Handle(s.T().Context(), complete)
	}()
	wg.Wait()
	close(results)

	for err := range results {
		s.Require().NoError(err)
	}

	after := s.status(itemID)
	s.Equal(map[string]string{
		"dupatta": section.DyeingCompleted.String(),
		"shirt":   section.CreatePacket.String(),
	}, sectionStatuses(after))
	s.Equal(before.Version+2, after.Version)
	s.InDelta(0, s.stockItem(stock["Organza"]).Reserved(), 1e-9)

	entries, err := s.reader.OrderTimeline(s.T().Context(), orderID)
	s.Require().NoError(err)
	actions := make([]string, 0, len(entries))
	for _, e := range entries {
		actions = append(actions, e.Action)
	}
	s.Contains(actions, string(timeline.ActionDyeingRejected))
	s.Contains(actions, string(timeline.ActionDyeingCompleted))
}

// Parallel rotations hand every head its share and never give one item two
// heads.
func (s *WorkflowSuite) TestConcurrentRoundRobinSpreadsEvenly() {
	const heads, items = 3, 7

	headIDs := make([]kernel.UUID, 0, heads)
	for i := range heads {
		id := kernel.NewUUID()
		s.createHead(id, "Workshop "+string(rune('A'+i)), i+1)
		headIDs = append(headIDs, id)
	}

	itemIDs := make([]kernel.UUID, 0, items)
	for range items {
		_, itemID := s.createOrder(plainSpec(kernel.Shirt))
		s.toReadyForProduction(itemID)
		itemIDs = append(itemIDs, itemID)
	}

	h := commands.NewAssignNextProductionHeadCommandHandler(s.uows)

	var wg sync.WaitGroup
	results := make(chan error, items)
	for range items {
		cmd, err := commands.NewAssignNextProductionHeadCommand()
		s.Require().NoError(err)
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- h.Handle(s.T().Context(), cmd)
		}()
	}
	wg.Wait()
	close(results)

	for err := range results {
		s.Require().NoError(err)
	}

	perHead := make(map[kernel.UUID]int, heads)
	for _, id := range itemIDs {
		status := s.status(id)
		s.Require().NotNil(status.ProductionHeadID)
		s.Contains(headIDs, *status.ProductionHeadID)
		perHead[*status.ProductionHeadID]++
	}

	counts := make([]int, 0, heads)
	for _, id := range headIDs {
		counts = append(counts, perHead[id])
	}
	slices.Sort(counts)
	s.Equal([]int{items / heads, items / heads, items/heads + 1}, counts)

	entries := 0
	for _, id := range itemIDs {
		status := s.status(id)
		timelineEntries, err := s.reader.OrderTimeline(s.T().Context(), status.OrderID)
		s.Require().NoError(err)
		for _, e := range timelineEntries {
			if e.Action == string(timeline.ActionHeadAssigned) {
				entries++
			}
		}
	}
	s.Equal(items, entries)

	cmd, err := commands.NewAssignNextProductionHeadCommand()
	s.Require().NoError(err)
	s.Require().ErrorIs(h.Handle(s.T().Context(), cmd), commands.ErrNoItemAwaitsHead)
}
