package config

import "time"

// GitLabSettings is the gitlab section of variables.yaml
type GitLabSettings struct {
	URL              string   `yaml:"default_gitlab_url"`
	BasePath         string   `yaml:"default_base_path"`
	ProjectTemplate  string   `yaml:"project_template"`
	DefaultNROs      []string `yaml:"default_nros"`
	DefaultTypes     []string `yaml:"default_types"`
	ReviewerPath     string   `yaml:"default_reviewer_path"`
	ReviewerUsername string   `yaml:"default_reviewer_username"`
	RenovatePrefix   string   `yaml:"renovate_branch_prefix"`
	MaxConcurrency   int      `yaml:"max_concurrency"`
	RequestTimeout   Duration `yaml:"request_timeout"`
}

// GCloudSettings is the gcloud section of variables.yaml
type GCloudSettings struct {
	ProjectPrefix        string   `yaml:"project_prefix"`
	ProjectTemplate      string   `yaml:"project_template"`
	PolicyTagProjectType string   `yaml:"policy_tag_project_type"`
	ProjectTypes         []string `yaml:"project_types"`
	DefaultLocation      string   `yaml:"default_location"`
	MaxConcurrency       int      `yaml:"max_concurrency"`
}

// AsanaSettings is the asana section of variables.yaml
type AsanaSettings struct {
	APIBaseURL         string            `yaml:"api_base_url"`
	DefaultProjectGID  string            `yaml:"default_project_gid"`
	DefaultAssigneeGID string            `yaml:"default_assignee_gid"`
	SectionMapping     map[string]string `yaml:"section_mapping"`
	RequestTimeout     Duration          `yaml:"request_timeout"`
}

// SlackSettings is the slack section of variables.yaml
type SlackSettings struct {
	Channels    map[string]string `yaml:"channels"`
	DefaultUser string            `yaml:"default_user"`
}

// ZoomSettings is the zoom section of variables.yaml
type ZoomSettings struct {
	MeetingBaseURL string `yaml:"meeting_base_url"`
	DefaultMeeting string `yaml:"default_meeting"`
}

// AISettings is the ai section of variables.yaml
type AISettings struct {
	OutputFile     string   `yaml:"output_file"`
	DefaultPrompt  string   `yaml:"default_prompt"`
	IgnorePatterns []string `yaml:"ignore_patterns"`
	TextExtensions []string `yaml:"text_extensions"`
	WarningPaths   []string `yaml:"warning_paths"`
	Browser        string   `yaml:"browser"`
	ChatURL        string   `yaml:"chat_url"`
}

const (
	DefaultGitLabTemplate = "{nro}/{nro}-data-platform-{type}"
	DefaultRenovatePrefix = "issue-renovate-"
	DefaultRequestTimeout = 30 * time.Second
	DefaultAsanaURL       = "https://app.asana.com/api/1.0"
	DefaultZoomURL        = "https://zoom.us/j/"
	DefaultAIOutputFile   = "ai_full_project.txt"
	DefaultChatURL        = "https://claude.ai/new"
	DefaultBrowser        = "Google Chrome"
)

// GitLab decodes the gitlab section with defaults applied
func (s *Store) GitLab() (GitLabSettings, error) {
	gs := GitLabSettings{
		ProjectTemplate: DefaultGitLabTemplate,
		RenovatePrefix:  DefaultRenovatePrefix,
		RequestTimeout:  Duration(DefaultRequestTimeout),
	}
	if err := s.Decode("gitlab", &gs); err != nil {
		return GitLabSettings{}, err
	}
	if gs.RequestTimeout <= 0 {
		gs.RequestTimeout = Duration(DefaultRequestTimeout)
	}
	if gs.RenovatePrefix == "" {
		gs.RenovatePrefix = DefaultRenovatePrefix
	}
	if gs.ProjectTemplate == "" {
		gs.ProjectTemplate = DefaultGitLabTemplate
	}
	return gs, nil
}

// GCloud decodes the gcloud section
func (s *Store) GCloud() (GCloudSettings, error) {
	var gs GCloudSettings
	if err := s.Decode("gcloud", &gs); err != nil {
		return GCloudSettings{}, err
	}
	return gs, nil
}

// Asana decodes the asana section with defaults applied
func (s *Store) Asana() (AsanaSettings, error) {
	as := AsanaSettings{
		APIBaseURL:     DefaultAsanaURL,
		RequestTimeout: Duration(DefaultRequestTimeout),
	}
	if err := s.Decode("asana", &as); err != nil {
		return AsanaSettings{}, err
	}
	if as.APIBaseURL == "" {
		as.APIBaseURL = DefaultAsanaURL
	}
	if as.RequestTimeout <= 0 {
		as.RequestTimeout = Duration(DefaultRequestTimeout)
	}
	return as, nil
}

// Slack decodes the slack section
func (s *Store) Slack() (SlackSettings, error) {
	var ss SlackSettings
	if err := s.Decode("slack", &ss); err != nil {
		return SlackSettings{}, err
	}
	return ss, nil
}

// Zoom decodes the zoom section with defaults applied
func (s *Store) Zoom() (ZoomSettings, error) {
	zs := ZoomSettings{MeetingBaseURL: DefaultZoomURL, DefaultMeeting: "daily"}
	if err := s.Decode("zoom", &zs); err != nil {
		return ZoomSettings{}, err
	}
	return zs, nil
}

// AI decodes the ai section with defaults applied
func (s *Store) AI() (AISettings, error) {
	as := AISettings{
		OutputFile: DefaultAIOutputFile,
		Browser:    DefaultBrowser,
		ChatURL:    DefaultChatURL,
	}
	if err := s.Decode("ai", &as); err != nil {
		return AISettings{}, err
	}
	if as.OutputFile == "" {
		as.OutputFile = DefaultAIOutputFile
	}
	return as, nil
}
