package sqlpilot

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/sqlpilot/sqlpilot/internal/intent"
	"github.com/sqlpilot/sqlpilot/internal/prompt"
)

var statementLeadPattern = regexp.MustCompile(`(?is)(select|insert|update|delete).*`)

// synthesize classifies the question, composes the instruction, and calls
// the generation endpoint. One stateless request, no retries.
func (a *Assistant) synthesize(ctx context.Context, question string) (string, error) {
	hints := intent.Classify(question)
	instruction := prompt.Compose(a.promptTables(), hints, question)

	startTime := time.Now()
	text, err := a.generator.Generate(ctx, instruction)
	if err != nil {
		return "", err
	}

	sql := ExtractSQL(text)
	a.logger.Info().
		Dur("duration", time.Since(startTime)).
		Str("sql", truncateForLog(sql, 200)).
		Msg("query synthesized")
	return sql, nil
}

// ExtractSQL cleans a generation response into a bare SQL statement:
// code-fence markers are stripped, then everything from the first
// statement-leading keyword onward is returned, trimmed. When no keyword
// is found the trimmed raw text is returned unchanged — malformed output
// is allowed to propagate so the store can reject it.
func ExtractSQL(text string) string {
	text = strings.ReplaceAll(text, "```sql", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	if m := statementLeadPattern.FindString(text); m != "" {
		return strings.TrimSpace(m)
	}
	return text
}
