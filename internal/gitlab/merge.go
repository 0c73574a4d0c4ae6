package gitlab

import (
	"context"
	"errors"

	"github.com/hvanthou/hv/internal/fanout"
	"github.com/hvanthou/hv/internal/rest"
)

// RecordState is the lifecycle of one merge request inside a merge run.
// Transitions only move forward and nothing is retried.
type RecordState int

const (
	PendingApproval RecordState = iota
	ApprovalAttempted
	MergeAttempted
	Merged
	Failed
)

func (s RecordState) String() string {
	switch s {
	case PendingApproval:
		return "pending-approval"
	case ApprovalAttempted:
		return "approval-attempted"
	case MergeAttempted:
		return "merge-attempted"
	case Merged:
		return "merged"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of one merge request. Approval problems are recorded
// in ApprovalReason and reported as warnings but never fail the record.
// History lists every state the record passed through, ending with State.
type Outcome struct {
	MergeRequest   MergeRequest
	Success        bool
	Reason         string
	ApprovalReason string
	State          RecordState
	History        []RecordState
}

func (o *Outcome) advance(s RecordState) {
	o.State = s
	o.History = append(o.History, s)
}

// Summary aggregates a merge run
type Summary struct {
	Merged   int
	Total    int
	Outcomes []Outcome
}

// MergePipeline approves (if needed) and merges merge requests concurrently
type MergePipeline struct {
	Merger         Merger
	Reporter       Reporter
	MaxConcurrency int
}

// NewMergePipeline creates an uncapped pipeline
func NewMergePipeline(merger Merger, reporter Reporter) *MergePipeline {
	return &MergePipeline{Merger: merger, Reporter: reporter}
}

// Apply processes every record independently and returns once all are done.
// Individual failures are reported and counted, never returned.
func (p *MergePipeline) Apply(ctx context.Context, mrs []MergeRequest) Summary {
	outcomes := fanout.Map(ctx, mrs, p.MaxConcurrency, p.process)

	summary := Summary{Total: len(mrs), Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Success {
			summary.Merged++
		}
	}
	return summary
}

func (p *MergePipeline) process(ctx context.Context, mr MergeRequest) Outcome {
	reporter := p.reporter()
	out := Outcome{MergeRequest: mr}
	out.advance(PendingApproval)

	state, err := p.Merger.GetApprovalState(ctx, mr.ProjectID, mr.IID)
	switch {
	case err != nil:
		out.ApprovalReason = failureReason(err)
	case !state.UserHasApproved:
		if err := p.Merger.Approve(ctx, mr.ProjectID, mr.IID); err != nil {
			out.ApprovalReason = failureReason(err)
		}
	}
	if out.ApprovalReason != "" {
		reporter.Warningf("Failed to approve: %s (%s)", mr.Title, out.ApprovalReason)
	}
	out.advance(ApprovalAttempted)

	out.advance(MergeAttempted)
	if err := p.Merger.Merge(ctx, mr.ProjectID, mr.IID); err != nil {
		out.Reason = failureReason(err)
		out.advance(Failed)
		reporter.Errorf("Failed to merge: %s (%s)", mr.Title, out.Reason)
		return out
	}

	out.advance(Merged)
	out.Success = true
	reporter.Successf("Successfully merged: %s", mr.Title)
	return out
}

func (p *MergePipeline) reporter() Reporter {
	if p.Reporter == nil {
		return discardReporter{}
	}
	return p.Reporter
}

// failureReason prefers the message GitLab put in the response body
func failureReason(err error) string {
	var apiErr *rest.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
