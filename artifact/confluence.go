package artifact

import (
	"fmt"
	"strings"
)

// ToConfluence applies the fixed markdown-to-Confluence-wiki substitutions:
// ATX headings become hN. headings, bold ** becomes *, hyphen list markers
// become *, and fenced code blocks become {code} macros. Section structure
// and the attribution footer are left untouched.
func ToConfluence(body string) string {
	lines := strings.Split(body, "\n")
	inFence := false

	for i, line := range lines {
		if strings.HasPrefix(line, "```") {
			if inFence {
				lines[i] = "{code}"
			} else {
				lang := strings.TrimSpace(strings.TrimPrefix(line, "```"))
				if lang == "" {
					lines[i] = "{code}"
				} else {
					lines[i] = fmt.Sprintf("{code:%s}", lang)
				}
			}
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		lines[i] = convertLine(line)
	}

	return strings.Join(lines, "\n")
}

func convertLine(line string) string {
	for level := 6; level >= 1; level-- {
		prefix := strings.Repeat("#", level) + " "
		if strings.HasPrefix(line, prefix) {
			line = fmt.Sprintf("h%d. %s", level, strings.TrimPrefix(line, prefix))
			break
		}
	}

	if strings.HasPrefix(line, "- ") {
		line = "* " + strings.TrimPrefix(line, "- ")
	}

	return strings.ReplaceAll(line, "**", "*")
}
