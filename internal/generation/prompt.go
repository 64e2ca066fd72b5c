package generation

import "fmt"

const (
	// DefaultTemperature is the sampling temperature for card generation.
	DefaultTemperature = 0.7

	// DefaultMaxTokens caps the length of a single completion.
	DefaultMaxTokens = 2500
)

// SystemPrompt instructs the model how to write cards for one chunk.
const SystemPrompt = `You are a medical education expert creating flashcards for a final year medical student.
Create comprehensive flashcards from the given medical text.

For each concept in the text, create multiple flashcards that cover different aspects:
1. Definition and basic concepts
2. Clinical features and presentations
3. Diagnostic criteria and investigations
4. Management principles and treatment options
5. Complications and prognosis
6. Key differentials and related conditions

Each flashcard should:
- Have a clear, focused question
- Provide a comprehensive but concise answer
- Be self-contained and make sense on its own
- Cover a single concept or aspect

Create 5-8 flashcards from this text segment, ensuring comprehensive coverage.

Format your response as a JSON array of objects with 'question' and 'answer' properties.`

// UserPrompt wraps a chunk in the per-request instruction.
func UserPrompt(chunk string) string {
	return fmt.Sprintf("Create detailed medical flashcards from this text segment:\n\n%s", chunk)
}

// ModelFor picks the model used for a chunk.
//
// TODO: route complex chunks to a dedicated llm.complex_model setting once a
// stronger model has been chosen; both branches use the configured model.
func ModelFor(model string, complex bool) string {
	if complex {
		return model
	}
	return model
}
