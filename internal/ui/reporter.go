package ui

// Reporter routes pipeline progress to the styled printers.
// It satisfies the reporter interfaces of the gitlab and gcloud packages.
type Reporter struct{}

func (Reporter) Successf(format string, args ...any) { Successf(format, args...) }
func (Reporter) Warningf(format string, args ...any) { Warningf(format, args...) }
func (Reporter) Errorf(format string, args ...any)   { Errorf(format, args...) }
