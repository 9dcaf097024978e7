package domain

import "fmt"

// IssueKind classifies a problem found while loading.
type IssueKind string

const (
	// IssueInvalidRecord is a record with a missing, mistyped or invalid field. The record is skipped.
	IssueInvalidRecord IssueKind = "invalid_record"
	// IssueDuplicateRecord is a record whose ID or natural key was already loaded. The record is skipped.
	IssueDuplicateRecord IssueKind = "duplicate_record"
	// IssueDanglingLoan is a borrowed item ID with no matching item. The link is skipped.
	IssueDanglingLoan IssueKind = "dangling_loan"
	// IssueConflictingLoan is a borrowed item already held by an earlier user. The link is skipped.
	IssueConflictingLoan IssueKind = "conflicting_loan"
	// IssueDroppedReservation is a reservation naming an unknown user or a non-reservable item.
	IssueDroppedReservation IssueKind = "dropped_reservation"
	// IssueAvailabilityCorrected is an item whose stored availability disagreed with the loans.
	IssueAvailabilityCorrected IssueKind = "availability_corrected"
	// IssueGenerationMismatch means the two documents were written by different saves.
	IssueGenerationMismatch IssueKind = "generation_mismatch"
)

// LoadIssue describes one problem that Load recovered from.
type LoadIssue struct {
	Kind     IssueKind
	Document string
	// Index is the record position in the document, or -1 when the issue is not tied to one record.
	Index    int
	RecordID string
	Err      error
}

// String renders the issue on one line.
func (i LoadIssue) String() string {
	var where string
	switch {
	case i.Index >= 0 && i.RecordID != "":
		where = fmt.Sprintf("%s[%d] (%s)", i.Document, i.Index, i.RecordID)
	case i.Index >= 0:
		where = fmt.Sprintf("%s[%d]", i.Document, i.Index)
	case i.RecordID != "":
		where = fmt.Sprintf("%s (%s)", i.Document, i.RecordID)
	default:
		where = i.Document
	}
	return fmt.Sprintf("%s: %s: %v", i.Kind, where, i.Err)
}

// LoadReport summarizes a load: how many records made it in and what was repaired or skipped.
type LoadReport struct {
	Items  int
	Users  int
	Issues []LoadIssue
}

// HasIssues reports whether anything was skipped or corrected.
func (r *LoadReport) HasIssues() bool {
	return len(r.Issues) > 0
}

// Count returns how many issues of kind were recorded.
func (r *LoadReport) Count(kind IssueKind) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Kind == kind {
			n++
		}
	}
	return n
}

// Add records an issue.
func (r *LoadReport) Add(issue LoadIssue) {
	r.Issues = append(r.Issues, issue)
}
