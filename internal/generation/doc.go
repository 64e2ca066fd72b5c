// Package generation turns chunks of medical text into flashcards using an
// external LLM. It owns the fixed instructional prompt, the parsing of model
// output (with a best-effort regex salvage for malformed JSON), the batch
// orchestration that bounds concurrent upstream calls, and deduplication of
// the assembled cards.
//
// The upstream model is reached only through the Completer interface, so the
// package does not depend on any specific provider SDK. Implementations live
// under internal/platform (OpenAI, Gemini).
//
// Failures are scoped to a single chunk: a Processor never returns an error,
// it logs the failure and contributes no cards. Only the caller decides
// whether an empty aggregate is an error.
package generation
