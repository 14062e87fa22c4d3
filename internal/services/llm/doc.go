// Package llm wraps the OpenRouter-style chat completion API used by the
// dynamic classifier.
//
// The client retries transient failures (429, 5xx, timeouts) with exponential
// backoff and honours Retry-After headers. Callers receive the trimmed text
// content of the first non-empty choice; prompt construction and label
// validation belong to the classify package.
package llm
