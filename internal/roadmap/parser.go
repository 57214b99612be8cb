package roadmap

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/julianstephens/cotask/internal/models"
)

var weekHeading = regexp.MustCompile(`^#{2,4}\s*Week\s+(\d+)\s*:?\s*(.*)$`)

// Parse extracts the Week -> Section -> Task outline from generated markdown.
// Parsing is best-effort: lines that fit no recognized shape are skipped, and
// the raw text is always preserved on the result.
func Parse(text string) models.Roadmap {
	roadmap := models.Roadmap{Raw: text}

	var week *models.RoadmapWeek
	var section *models.RoadmapSection

	flushSection := func() {
		if week != nil && section != nil {
			week.Sections = append(week.Sections, *section)
		}
		section = nil
	}
	flushWeek := func() {
		flushSection()
		if week != nil {
			roadmap.Weeks = append(roadmap.Weeks, *week)
		}
		week = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := weekHeading.FindStringSubmatch(line); m != nil {
			flushWeek()
			number, _ := strconv.Atoi(m[1])
			week = &models.RoadmapWeek{Number: number, Focus: strings.TrimSpace(m[2])}
			continue
		}
		if week == nil {
			continue
		}

		if title, ok := boldLine(line); ok {
			flushSection()
			section = &models.RoadmapSection{Title: title}
			continue
		}

		if task, ok := bulletLine(line); ok && section != nil {
			section.Tasks = append(section.Tasks, models.RoadmapTask{Title: task})
		}
	}
	flushWeek()

	return roadmap
}

// boldLine matches a "**Section title**" main-task line, tolerating a leading
// bullet and trailing colon.
func boldLine(line string) (string, bool) {
	line = strings.TrimPrefix(line, "- ")
	line = strings.TrimPrefix(line, "* ")
	if !strings.HasPrefix(line, "**") {
		return "", false
	}
	end := strings.Index(line[2:], "**")
	if end < 0 {
		return "", false
	}
	title := strings.TrimSuffix(strings.TrimSpace(line[2:2+end]), ":")
	if title == "" {
		return "", false
	}
	return title, true
}

func bulletLine(line string) (string, bool) {
	for _, prefix := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(line, prefix) {
			task := strings.TrimSpace(strings.TrimPrefix(line, prefix))
			if task == "" {
				return "", false
			}
			return task, true
		}
	}
	return "", false
}
