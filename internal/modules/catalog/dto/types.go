package dto

type LessonOutput struct {
	ID          string
	ModuleID    string
	Title       string
	Description string
	VideoURL    string
	Duration    string
	Completed   bool
}

type ProgressOutput struct {
	Completed int
	Total     int
	Percent   int
}

type ModuleOutput struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Lessons     []LessonOutput
	Progress    ProgressOutput
}

type OverviewOutput struct {
	Overall ProgressOutput
	Modules []ModuleOutput
}

type ToggleInput struct {
	ModuleID string
	LessonID string
}

type SetCompletionInput struct {
	LessonID  string
	Completed bool
}
