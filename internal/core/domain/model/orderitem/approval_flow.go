package orderitem

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/section"
	"fulfillment/internal/pkg/errs"
)

var videoURLPattern = regexp.MustCompile(
	`^https?://(?:www\.)?(?:youtube\.com/(?:watch\?v=|shorts/|embed/)[\w-]+|youtu\.be/[\w-]+|` +
		`vimeo\.com/\d+|drive\.google\.com/(?:file/d/|open\?id=)[\w-]+|loom\.com/share/[\w-]+)`)

// ValidateVideoURL accepts links to the supported video hosts.
func ValidateVideoURL(raw string) error {
	url := strings.TrimSpace(raw)
	if url == "" {
		return errs.NewValueIsRequiredError("video url")
	}
	if !videoURLPattern.MatchString(url) {
		return errs.NewValueIsInvalidErrorWithCause("video url", fmt.Errorf("%q is not a supported video link", url))
	}
	return nil
}

// AddQAEvidence attaches the verification video to a section in QA_PENDING.
func (i *OrderItem) AddQAEvidence(s kernel.Section, videoURL string, addedBy kernel.UUID, now time.Time) error {
	if err := ValidateVideoURL(videoURL); err != nil {
		return err
	}
	if err := addedBy.Validate(); err != nil {
		return err
	}

	url := strings.TrimSpace(videoURL)
	return i.applyAll([]kernel.Section{s}, section.EventQAEvidenceAdded, now, func(_ kernel.Section, rec *section.Record) {
		rec.QA = &section.QAData{VideoURL: url, AddedBy: addedBy, AddedAt: now}
	})
}

func (i *OrderItem) RequestClientApproval(sections []kernel.Section, now time.Time) error {
	return i.applyAll(sections, section.EventClientApprovalRequested, now, nil)
}

func (i *OrderItem) RecordClientApproval(sections []kernel.Section, now time.Time) error {
	return i.applyAll(sections, section.EventClientApproved, now, func(_ kernel.Section, rec *section.Record) {
		at := now
		rec.ClientApprovedAt = &at
	})
}

// MarkDispatched is called when the parent order leaves with a courier.
func (i *OrderItem) MarkDispatched(now time.Time) error {
	if i.status != ClientApproved {
		return errs.NewStateConflictError("order item", i.status.String(), ClientApproved.String())
	}
	i.status = Dispatched
	i.updatedAt = now
	return nil
}

// Complete closes every section. The item must have been dispatched.
func (i *OrderItem) Complete(now time.Time) error {
	if i.status != Dispatched {
		return errs.NewStateConflictError("order item", i.status.String(), Dispatched.String())
	}
	return i.applyAll(i.RelevantPieces(), section.EventOrderCompleted, now, nil)
}
