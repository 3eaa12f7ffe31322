package packet

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/orderitem"
	"fulfillment/internal/core/domain/model/section"
	"fulfillment/internal/pkg/errs"
)

var ErrPacketIsNotConstructed = errors.New("Packet must be created via NewPacket constructor")

// Rejection is one verification failure, kept for the audit trail.
type Rejection struct {
	Round    int
	Code     string
	Reason   string
	By       kernel.UUID
	At       time.Time
	Sections []kernel.Section
}

// State is the persisted form of a Packet.
type State struct {
	ID                   kernel.UUID
	OrderItemID          kernel.UUID
	Lines                []Line
	Round                int
	IsPartial            bool
	SectionsIncluded     []kernel.Section
	SectionsPending      []kernel.Section
	CurrentRoundSections []kernel.Section
	Status               Status
	AssigneeID           *kernel.UUID
	AssignedBy           *kernel.UUID
	AssignedAt           *time.Time
	StartedAt            *time.Time
	CompletedAt          *time.Time
	ApprovedBy           *kernel.UUID
	ApprovedAt           *time.Time
	Rejections           []Rejection
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Packet is the material-picking work order of one order item.
//
// A packet is partial when some sections still waited for material at
// creation. Those sections are pending and join the packet later in a new
// round. Every round has its own current sections, and a rejection at round
// two or later only resets that round.
type Packet struct {
	state         State
	isConstructed bool
}

// NewPacket opens round one for the included sections.
func NewPacket(
	id, orderItemID kernel.UUID,
	included, pending []kernel.Section,
	lines []LineSpec,
	now time.Time,
) (*Packet, error) {
	if err := errors.Join(id.Validate(), orderItemID.Validate()); err != nil {
		return nil, err
	}
	if len(included) == 0 {
		return nil, errs.NewValueIsRequiredError("sections")
	}
	for _, s := range pending {
		if kernel.ContainsSection(included, s) {
			return nil, errs.NewValueIsInvalidErrorWithCause("pending sections",
				fmt.Errorf("%s is already included", s))
		}
	}

	p := &Packet{
		state: State{
			ID:                   id,
			OrderItemID:          orderItemID,
			Round:                1,
			IsPartial:            len(pending) > 0,
			SectionsIncluded:     kernel.SortSections(slices.Clone(included)),
			SectionsPending:      kernel.SortSections(slices.Clone(pending)),
			CurrentRoundSections: kernel.SortSections(slices.Clone(included)),
			Status:               Unassigned,
			CreatedAt:            now,
			UpdatedAt:            now,
		},
		isConstructed: true,
	}
	if err := p.appendLines(lines, included); err != nil {
		return nil, err
	}
	return p, nil
}

func RestorePacket(state State) (*Packet, error) {
	if err := errors.Join(state.ID.Validate(), state.OrderItemID.Validate(), state.Status.Validate()); err != nil {
		return nil, err
	}
	return &Packet{state: cloneState(state), isConstructed: true}, nil
}

func (p *Packet) State() State { return cloneState(p.state) }

func (p *Packet) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPacketIsNotConstructed
	}
	return nil
}

func (p *Packet) ID() kernel.UUID          { return p.state.ID }
func (p *Packet) OrderItemID() kernel.UUID { return p.state.OrderItemID }
func (p *Packet) Status() Status           { return p.state.Status }
func (p *Packet) Round() int               { return p.state.Round }
func (p *Packet) IsPartial() bool          { return p.state.IsPartial }
func (p *Packet) Lines() []Line            { return slices.Clone(p.state.Lines) }

func (p *Packet) SectionsIncluded() []kernel.Section { return slices.Clone(p.state.SectionsIncluded) }
func (p *Packet) SectionsPending() []kernel.Section  { return slices.Clone(p.state.SectionsPending) }

func (p *Packet) CurrentRoundSections() []kernel.Section {
	return slices.Clone(p.state.CurrentRoundSections)
}

func (p *Packet) Assignee() *kernel.UUID {
	if p.state.AssigneeID == nil {
		return nil
	}
	id := *p.state.AssigneeID
	return &id
}

func (p *Packet) Rejections() []Rejection { return slices.Clone(p.state.Rejections) }

// PickedCount returns how many lines are picked.
func (p *Packet) PickedCount() int {
	n := 0
	for _, l := range p.state.Lines {
		if l.IsPicked {
			n++
		}
	}
	return n
}

// IsSectionPicked reports whether every line of s is picked.
func (p *Packet) IsSectionPicked(s kernel.Section) bool {
	for _, l := range p.state.Lines {
		if l.Section == s && !l.IsPicked {
			return false
		}
	}
	return true
}

// Phase is the packet state as seen by the order item status.
func (p *Packet) Phase() orderitem.PacketPhase {
	if p == nil {
		return orderitem.PacketNone
	}
	switch p.state.Status {
	case Completed:
		return orderitem.PacketCompleted
	case Approved:
		return orderitem.PacketApproved
	default:
		return orderitem.PacketActive
	}
}

// Assign records assignee and assigner. Reassignment is allowed until work starts.
func (p *Packet) Assign(assignee, assigner kernel.UUID, now time.Time) error {
	if err := errors.Join(assignee.Validate(), assigner.Validate()); err != nil {
		return err
	}
	if err := p.move(EventAssign, now); err != nil {
		return err
	}
	a, by, at := assignee, assigner, now
	p.state.AssigneeID = &a
	p.state.AssignedBy = &by
	p.state.AssignedAt = &at
	return nil
}

// Start begins picking. Only the assignee may start.
func (p *Packet) Start(user kernel.UUID, now time.Time) error {
	if err := p.requireAssignee(user); err != nil {
		return err
	}
	if err := p.move(EventStart, now); err != nil {
		return err
	}
	at := now
	p.state.StartedAt = &at
	return nil
}

// Pick marks one line as picked with the quantity actually taken.
func (p *Packet) Pick(lineID kernel.UUID, quantity float64, now time.Time) error {
	if p.state.Status != InProgress {
		return errs.NewStateConflictError("packet", p.state.Status.String(), InProgress.String())
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("picked quantity", fmt.Errorf("%v is not greater than 0", quantity))
	}

	idx := slices.IndexFunc(p.state.Lines, func(l Line) bool { return l.ID.IsEqual(lineID) })
	if idx < 0 {
		return errs.NewObjectNotFoundError("pick item", lineID.String())
	}
	p.state.Lines[idx].Picked = kernel.RoundQuantity(quantity)
	p.state.Lines[idx].IsPicked = true
	p.state.UpdatedAt = now
	return nil
}

// Complete finishes picking. Every line must be picked.
func (p *Packet) Complete(user kernel.UUID, now time.Time) error {
	if p.state.Status != InProgress {
		return errs.NewStateConflictError("packet", p.state.Status.String(), InProgress.String())
	}
	if err := p.requireAssignee(user); err != nil {
		return err
	}

	unpicked := make([]string, 0)
	for _, l := range p.state.Lines {
		if !l.IsPicked {
			unpicked = append(unpicked, fmt.Sprintf("%s %s (%s)", l.ID, l.ItemName, l.Section))
		}
	}
	if len(unpicked) > 0 {
		return errs.NewIncompletePreconditionError("pick list has unpicked lines", unpicked...)
	}

	if err := p.move(EventComplete, now); err != nil {
		return err
	}
	at := now
	p.state.CompletedAt = &at
	return nil
}

// Approve accepts a completed packet.
func (p *Packet) Approve(by kernel.UUID, now time.Time) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if err := p.move(EventApprove, now); err != nil {
		return err
	}
	approver, at := by, now
	p.state.ApprovedBy = &approver
	p.state.ApprovedAt = &at
	return nil
}

// ValidateReject checks a rejection request before anything is changed.
func (p *Packet) ValidateReject(code, reason string) error {
	if err := errors.Join(
		requireText("reason code", code),
		requireText("reason", reason),
	); err != nil {
		return err
	}
	if p.state.Status != Completed {
		return errs.NewStateConflictError("packet", p.state.Status.String(), Completed.String())
	}
	return nil
}

// RejectionScope returns the sections a rejection may reset: the current
// round of a partial packet from round two on, otherwise every included section.
func (p *Packet) RejectionScope() []kernel.Section {
	if p.state.Round >= 2 && p.state.IsPartial {
		return slices.Clone(p.state.CurrentRoundSections)
	}
	return slices.Clone(p.state.SectionsIncluded)
}

// Reject resets the lines of the reset sections and sends the packet back to
// its assignee for rework in a new round.
func (p *Packet) Reject(by kernel.UUID, code, reason string, reset []kernel.Section, now time.Time) error {
	if err := p.ValidateReject(code, reason); err != nil {
		return err
	}
	if err := by.Validate(); err != nil {
		return err
	}
	if len(reset) == 0 {
		return errs.NewStateConflictError("packet sections", "beyond packet verification",
			section.CreatePacket.String(), section.PacketVerification.String())
	}

	if err := p.move(EventReject, now); err != nil {
		return err
	}
	p.resetLines(reset)
	p.state.Rejections = append(p.state.Rejections, Rejection{
		Round:    p.state.Round,
		Code:     strings.TrimSpace(code),
		Reason:   strings.TrimSpace(reason),
		By:       by,
		At:       now,
		Sections: kernel.SortSections(slices.Clone(reset)),
	})
	p.state.Round++
	p.state.CurrentRoundSections = kernel.SortSections(slices.Clone(reset))
	p.state.CompletedAt = nil
	p.state.StartedAt = nil
	return p.move(EventRework, now)
}

// ValidateSpecificApproval checks that sections may be approved ahead of the packet.
func (p *Packet) ValidateSpecificApproval(sections []kernel.Section) error {
	if len(sections) == 0 {
		return errs.NewValueIsRequiredError("sections")
	}
	if p.state.Status == Unassigned || p.state.Status == Rejected {
		return errs.NewStateConflictError("packet", p.state.Status.String(),
			Assigned.String(), InProgress.String(), Completed.String(), Approved.String())
	}
	for _, s := range sections {
		if !kernel.ContainsSection(p.state.SectionsIncluded, s) {
			return errs.NewValueIsInvalidErrorWithCause("sections", fmt.Errorf("%s is not in the packet", s))
		}
	}
	return nil
}

// SettleApproval approves a completed packet once no included section is left
// at or before verification. It reports whether the packet was approved.
func (p *Packet) SettleApproval(statuses map[kernel.Section]section.Status, by kernel.UUID, now time.Time) (bool, error) {
	if p.state.Status != Completed {
		return false, nil
	}
	for _, s := range p.state.SectionsIncluded {
		if !statuses[s].IsBeyondPacketVerification() {
			return false, nil
		}
	}
	if err := p.Approve(by, now); err != nil {
		return false, err
	}
	return true, nil
}

// OpenNextRound pulls pending sections whose material became available into
// an approved partial packet.
func (p *Packet) OpenNextRound(sections []kernel.Section, lines []LineSpec, now time.Time) error {
	if len(sections) == 0 {
		return errs.NewValueIsRequiredError("sections")
	}
	for _, s := range sections {
		if !kernel.ContainsSection(p.state.SectionsPending, s) {
			return errs.NewValueIsInvalidErrorWithCause("sections", fmt.Errorf("%s is not pending", s))
		}
	}
	if _, err := p.state.Status.Next(EventOpenRound); err != nil {
		return err
	}

	p.state.Round++
	if err := p.appendLines(lines, sections); err != nil {
		p.state.Round--
		return err
	}
	p.state.SectionsPending = slices.DeleteFunc(p.state.SectionsPending, func(s kernel.Section) bool {
		return kernel.ContainsSection(sections, s)
	})
	p.state.SectionsIncluded = kernel.SortSections(append(p.state.SectionsIncluded, sections...))
	p.state.CurrentRoundSections = kernel.SortSections(slices.Clone(sections))
	p.state.CompletedAt = nil
	p.state.StartedAt = nil
	p.state.ApprovedAt = nil
	p.state.ApprovedBy = nil
	return p.move(EventOpenRound, now)
}

// OpenReworkRound puts a section rejected in dyeing back on the pick list and
// hands the packet to its original assignee.
func (p *Packet) OpenReworkRound(s kernel.Section, now time.Time) error {
	if !kernel.ContainsSection(p.state.SectionsIncluded, s) {
		return errs.NewValueIsInvalidErrorWithCause("section", fmt.Errorf("%s is not in the packet", s))
	}

	switch p.state.Status {
	case Approved:
		p.state.Round++
		p.state.CurrentRoundSections = []kernel.Section{s}
		p.state.ApprovedAt = nil
		p.state.ApprovedBy = nil
	case Unassigned, Assigned, InProgress, Completed:
		if !kernel.ContainsSection(p.state.CurrentRoundSections, s) {
			p.state.CurrentRoundSections = kernel.SortSections(append(p.state.CurrentRoundSections, s))
		}
	default:
		return errs.NewStateConflictError("packet", p.state.Status.String(),
			Unassigned.String(), Assigned.String(), InProgress.String(), Completed.String(), Approved.String())
	}
	p.resetLines([]kernel.Section{s})

	if p.state.Status == Assigned || p.state.Status == InProgress {
		p.state.UpdatedAt = now
		return nil
	}
	if p.state.AssigneeID == nil {
		p.state.UpdatedAt = now
		return nil
	}
	p.state.CompletedAt = nil
	return p.move(EventRework, now)
}

func (p *Packet) move(e Event, now time.Time) error {
	next, err := p.state.Status.Next(e)
	if err != nil {
		return err
	}
	p.state.Status = next
	p.state.UpdatedAt = now
	return nil
}

func (p *Packet) requireAssignee(user kernel.UUID) error {
	if err := user.Validate(); err != nil {
		return err
	}
	if p.state.AssigneeID == nil || !p.state.AssigneeID.IsEqual(user) {
		return errs.NewStateConflictError("packet assignee", user.String(), p.assigneeName())
	}
	return nil
}

func (p *Packet) assigneeName() string {
	if p.state.AssigneeID == nil {
		return "unassigned"
	}
	return p.state.AssigneeID.String()
}

func (p *Packet) appendLines(specs []LineSpec, allowed []kernel.Section) error {
	lines := make([]Line, 0, len(specs))
	for _, spec := range specs {
		if !kernel.ContainsSection(allowed, spec.Section) {
			return errs.NewValueIsInvalidErrorWithCause("pick list",
				fmt.Errorf("line for %s is outside the round", spec.Section))
		}
		if spec.Required <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("required quantity",
				fmt.Errorf("%v is not greater than 0", spec.Required))
		}
		lines = append(lines, Line{
			ID:              kernel.NewUUID(),
			InventoryItemID: spec.InventoryItemID,
			ItemName:        spec.ItemName,
			Section:         spec.Section,
			Required:        kernel.RoundQuantity(spec.Required),
			Unit:            spec.Unit,
			RackLocation:    spec.RackLocation,
			Round:           p.state.Round,
		})
	}
	p.state.Lines = append(p.state.Lines, lines...)
	return nil
}

func (p *Packet) resetLines(sections []kernel.Section) {
	for i := range p.state.Lines {
		if kernel.ContainsSection(sections, p.state.Lines[i].Section) {
			p.state.Lines[i].reset()
		}
	}
}

func requireText(param, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}

func cloneID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneState(s State) State {
	out := s
	out.Lines = slices.Clone(s.Lines)
	out.SectionsIncluded = slices.Clone(s.SectionsIncluded)
	out.SectionsPending = slices.Clone(s.SectionsPending)
	out.CurrentRoundSections = slices.Clone(s.CurrentRoundSections)
	out.AssigneeID = cloneID(s.AssigneeID)
	out.AssignedBy = cloneID(s.AssignedBy)
	out.ApprovedBy = cloneID(s.ApprovedBy)
	out.AssignedAt = cloneTime(s.AssignedAt)
	out.StartedAt = cloneTime(s.StartedAt)
	out.CompletedAt = cloneTime(s.CompletedAt)
	out.ApprovedAt = cloneTime(s.ApprovedAt)
	out.Rejections = make([]Rejection, len(s.Rejections))
	for i, r := range s.Rejections {
		r.Sections = slices.Clone(r.Sections)
		out.Rejections[i] = r
	}
	if s.Rejections == nil {
		out.Rejections = nil
	}
	return out
}
