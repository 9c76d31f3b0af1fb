package errx

import "net/http"

// WrapToolServer wraps a failure to start or handshake with the tool-provider
// subprocess. These correspond to communication errors rather than failures of
// the selected tool itself.
func WrapToolServer(err error) *AppError {
	if err == nil {
		return nil
	}
	return New(err, http.StatusInternalServerError, ToolServerErrorMessage)
}

// WrapToolInvocation wraps a failure while executing a named tool on an
// established session.
func WrapToolInvocation(err error) *AppError {
	if err == nil {
		return nil
	}
	return New(err, http.StatusInternalServerError, ToolInvocationErrorMessage)
}
