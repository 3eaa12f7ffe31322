package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/pkg/guard"
)

var ErrAddQAEvidenceCommandIsNotConstructed = errors.New(
	"AddQAEvidenceCommand must be created via NewAddQAEvidenceCommand constructor",
)

// AddQAEvidenceCommand attaches a verification video to a section in QA.
// Only YouTube, Vimeo, Loom and Google Drive links are accepted.
type AddQAEvidenceCommand struct { //nolint:recvcheck //using for validation
	orderItemID kernel.UUID
	section     kernel.Section
	videoURL    string
	actorID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewAddQAEvidenceCommand(orderItemID kernel.UUID, s kernel.Section, videoURL string, actorID kernel.UUID) (AddQAEvidenceCommand, error) {
	if err := errors.Join(
		orderItemID.Validate(),
		actorID.Validate(),
		s.Validate(),
		orderitem.ValidateVideoURL(videoURL),
	); err != nil {
		return AddQAEvidenceCommand{}, err
	}
	return AddQAEvidenceCommand{
		orderItemID: orderItemID,
		section:     s,
		videoURL:    videoURL,
		actorID:     actorID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AddQAEvidenceCommand) Validate() error {
	return c.guard.Validate(ErrAddQAEvidenceCommandIsNotConstructed)
}

func (c AddQAEvidenceCommand) OrderItemID() kernel.UUID { return c.orderItemID }
func (c AddQAEvidenceCommand) Section() kernel.Section  { return c.section }
func (c AddQAEvidenceCommand) VideoURL() string         { return c.videoURL }
func (c AddQAEvidenceCommand) ActorID() kernel.UUID     { return c.actorID }
