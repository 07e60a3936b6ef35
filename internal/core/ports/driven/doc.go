// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ConfigStore: Application configuration
//   - ProfileStore: Saved birth profile persistence
//   - ReadingStore: Oracle reading history
//   - PostStore: Blog content
//   - InterpretationCatalog: Canned text for each number
//   - OracleDeck: Canned text for each dice total
//   - Dice: Source of die faces
//   - MarkdownRenderer: Terminal formatting for blog posts
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Chat completion. Without it, chat returns ErrLLMUnavailable.
//   - PromptStore: Custom prompts. Without it, built-in prompts are used.
//   - Mailer: Outbound email. Without it, the email action is disabled.
//   - ObjectStore: Report uploads. Without it, share upload returns ErrShareUnavailable.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
