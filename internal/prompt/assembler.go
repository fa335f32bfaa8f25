package prompt

import (
	"fmt"
	"strings"

	"codeberg.org/docchat/server/internal/retriever"
)

const (
	historyHeader = "Previous conversation:"
	contextHeader = "Your context:"
	noContextLine = "No relevant context was found for this question."
	queryPrefix   = "Based on the above context, answer the query: "
)

// Turn is one prior exchange in a multi-turn chat. it is opaque context:
// appended to the prompt verbatim, never reasoned over structurally.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Result is the assembled prompt plus the chunks that actually made it in
// after the budget was applied; the response's sources must echo exactly
// these.
type Result struct {
	Prompt string
	Used   []retriever.Retrieved
}

// Assembler renders retrieved chunks and the user's question into a single
// bounded prompt with a fixed, reproducible template.
type Assembler struct {
	charBudget int
}

// NewAssembler creates an assembler bounded by charBudget characters.
// a budget of zero or less means unbounded.
func NewAssembler(charBudget int) *Assembler {
	return &Assembler{charBudget: charBudget}
}

// Assemble renders the prompt. chunks appear exactly once each, in the
// order given (descending similarity), individually labeled with their
// rank and page so answers can be traced back to a source. the literal
// query text is appended once, verbatim, after all context. when the
// rendered chunks would exceed the budget, whole lowest-ranked chunks are
// dropped from the tail; a chunk is never split from its label.
func (a *Assembler) Assemble(chunks []retriever.Retrieved, queryText string, history []Turn) Result {
	var b strings.Builder

	if len(history) > 0 {
		b.WriteString(historyHeader)
		b.WriteString("\n")

		for _, turn := range history {
			b.WriteString(turn.Role)
			b.WriteString(": ")
			b.WriteString(turn.Content)
			b.WriteString("\n")
		}

		b.WriteString("\n")
	}

	b.WriteString(contextHeader)
	b.WriteString("\n")

	queryLine := "\n" + queryPrefix + queryText + "\n"

	// fixed parts always render; the budget is spent on chunks
	overhead := b.Len() + len(queryLine)

	var used []retriever.Retrieved
	var contextBlock strings.Builder

	for i, chunk := range chunks {
		block := fmt.Sprintf("Chunk %d (page %d): %s\n\n", i+1, chunk.Page, chunk.Text)

		if a.charBudget > 0 && overhead+contextBlock.Len()+len(block) > a.charBudget {
			// everything below this rank is dropped too
			break
		}

		contextBlock.WriteString(block)
		used = append(used, chunk)
	}

	if len(used) == 0 {
		b.WriteString(noContextLine)
		b.WriteString("\n")
	} else {
		b.WriteString(contextBlock.String())
	}

	b.WriteString(queryLine)

	return Result{Prompt: b.String(), Used: used}
}
