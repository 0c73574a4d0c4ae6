package gitlab

// MergeRequest is an open merge request as returned by the GitLab API.
// ProjectPath is attached after fetch and is not part of the API payload.
type MergeRequest struct {
	ID              int        `json:"id"`
	IID             int        `json:"iid"`
	ProjectID       int        `json:"project_id"`
	TargetProjectID int        `json:"target_project_id"`
	Title           string     `json:"title"`
	SourceBranch    string     `json:"source_branch"`
	TargetBranch    string     `json:"target_branch"`
	WebURL          string     `json:"web_url"`
	Draft           bool       `json:"draft"`
	Author          User       `json:"author"`
	References      References `json:"references"`

	ProjectPath string `json:"-"`
}

// User is a GitLab user reference
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// References holds the short and fully qualified MR references
type References struct {
	Short string `json:"short"`
	Full  string `json:"full"`
}

// ApprovalState is the subset of the approvals endpoint the merge pipeline needs
type ApprovalState struct {
	Approved        bool `json:"approved"`
	ApprovalsLeft   int  `json:"approvals_left"`
	UserHasApproved bool `json:"user_has_approved"`
}

// Project is the subset of the project endpoint needed to resolve ids
type Project struct {
	ID                int    `json:"id"`
	PathWithNamespace string `json:"path_with_namespace"`
}

// Reporter receives per-item progress from the fetch and merge pipelines
type Reporter interface {
	Successf(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
}

type discardReporter struct{}

func (discardReporter) Successf(string, ...any) {}
func (discardReporter) Warningf(string, ...any) {}
func (discardReporter) Errorf(string, ...any)   {}

// GroupByProject groups records by ProjectPath, keeping first-seen project order
// and API order within a project.
func GroupByProject(mrs []MergeRequest) ([]string, map[string][]MergeRequest) {
	var order []string
	groups := map[string][]MergeRequest{}
	for _, mr := range mrs {
		if _, ok := groups[mr.ProjectPath]; !ok {
			order = append(order, mr.ProjectPath)
		}
		groups[mr.ProjectPath] = append(groups[mr.ProjectPath], mr)
	}
	return order, groups
}
