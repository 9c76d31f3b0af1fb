package errx

import "net/http"

// WrapLLM wraps a Gemini API failure with a consistent status and message.
func WrapLLM(err error) *AppError {
	if err == nil {
		return nil
	}
	return New(err, http.StatusInternalServerError, LLMErrorMessage)
}
