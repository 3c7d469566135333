package feeds

import (
	"strings"

	"github.com/Aguus467/angulismotv/internal/pkg/models"
)

// teamSeparators, in precedence order.
var teamSeparators = []string{" vs ", " - "}

// TeamsFromTitle extracts team names from a free-text event title, shared by
// every adapter: a leading "Competition: " prefix (anything before the first
// colon) is stripped, then the title is split on " vs " first and " - "
// second. A title with no separator becomes a single-team event.
func TeamsFromTitle(title string) []models.Team {
	t := strings.TrimSpace(title)
	if t == "" {
		return nil
	}

	if i := strings.Index(t, ":"); i >= 0 {
		if rest := strings.TrimSpace(t[i+1:]); rest != "" {
			t = rest
		}
	}

	for _, sep := range teamSeparators {
		if !strings.Contains(t, sep) {
			continue
		}
		var teams []models.Team
		for _, part := range strings.Split(t, sep) {
			if name := strings.TrimSpace(part); name != "" {
				teams = append(teams, models.Team{Name: name})
			}
		}
		if len(teams) > 0 {
			return teams
		}
	}

	return []models.Team{{Name: t}}
}
