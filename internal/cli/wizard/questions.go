package wizard

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/forgeapi/forgeapi/internal/defs"
)

// DefaultQuestions builds the question list for a generation run.
// profileOptions maps profile names to their descriptions.
func DefaultQuestions(profileNames []string, profileDescs map[string]string, defaultProfile string) []Question {
	title := cases.Title(language.English)

	opts := make([]Option, 0, len(profileNames))
	for _, name := range profileNames {
		opts = append(opts, Option{
			Label: title.String(name),
			Value: name,
			Desc:  profileDescs[name],
		})
	}

	return []Question{
		{
			ID:          "project_name",
			Type:        QuestionTypeInput,
			Title:       "Project folder name",
			Description: "Created relative to the current directory",
			Default:     defs.DefaultProjectName,
		},
		{
			ID:      "profile",
			Type:    QuestionTypeSelect,
			Title:   "Template profile",
			Options: opts,
			Default: defaultProfile,
		},
	}
}
